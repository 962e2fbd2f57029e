package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"detector-go/common"
	"detector-go/database"
	"detector-go/modules"
	"detector-go/queue"
	"detector-go/routes"
)

func main() {
	common.InitCache()
	database.InitDB()

	publisher, err := queue.NewMQTTPublisher(common.Config.Queue)
	if err != nil {
		zap.S().Fatalw("failed to connect to queue broker", "error", err)
	}
	defer publisher.Disconnect()

	players := modules.NewPlayerDirectory(database.DB, common.Cache)
	feedback := modules.NewFeedbackModule(database.DB, players)
	registerCounters(players, feedback)

	reportsHandler := &routes.Reports{Ingest: modules.NewReportIngest(players, publisher)}
	scoresHandler := &routes.Scores{Engine: modules.NewScores(database.DB)}
	predictions := modules.NewPredictions(database.DB)
	feedbackHandler := &routes.Feedback{Module: feedback, Lister: predictions}
	predictionsHandler := &routes.Predictions{Module: predictions}

	r := chi.NewRouter()
	r.Use(countRequests)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Bot detector API")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v2", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(60, time.Minute))
			r.Post("/report", reportsHandler.PostReports)
			r.Post("/player/feedback", feedbackHandler.PostFeedback)
		})

		r.Get("/player/report/score", scoresHandler.GetReportScore)
		r.Get("/player/feedback/score", scoresHandler.GetFeedbackScore)
		r.Get("/player/feedback", feedbackHandler.GetFeedback)
		r.Get("/prediction", predictionsHandler.GetPredictions)
	})

	zap.S().Infow("starting server", "port", common.Config.Port)

	err = http.ListenAndServe(":"+common.Config.Port, r)
	if errors.Is(err, http.ErrServerClosed) {
		fmt.Printf("server closed\n")
	} else if err != nil {
		fmt.Printf("error starting server: %s\n", err)
		os.Exit(1)
	}
}

package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detector-go/common"
	"detector-go/modules"
	"detector-go/routes"
)

type fakeIngester struct {
	n   int
	err error
}

func (f *fakeIngester) Ingest(_ context.Context, detections []modules.Detection) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.n = len(detections)
	return f.n, nil
}

type seqResolver struct {
	ids  map[string]int64
	next int64
}

func (s *seqResolver) ResolveOrCreate(_ context.Context, name string) (int64, error) {
	if s.ids == nil {
		s.ids = map[string]int64{}
	}
	if id, ok := s.ids[name]; ok {
		return id, nil
	}
	s.next++
	s.ids[name] = s.next
	return s.next, nil
}

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func detectionBody(ts int64) []byte {
	body, _ := json.Marshal([]map[string]any{{
		"reporter":  "player1",
		"reported":  "player2",
		"region_id": 1,
		"x_coord":   100,
		"y_coord":   200,
		"z_coord":   300,
		"ts":        ts,
		"equipment": map[string]int{"equip_head_id": 10},
	}})
	return body
}

func postReport(h *routes.Reports, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v2/report", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.PostReports).ServeHTTP(rr, req)
	return rr
}

func TestPostReportsSuccess(t *testing.T) {
	ingester := &fakeIngester{}
	h := &routes.Reports{Ingest: ingester}

	rr := postReport(h, detectionBody(time.Now().Unix()))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, ingester.n)

	var resp routes.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestPostReportsContentType(t *testing.T) {
	h := &routes.Reports{Ingest: &fakeIngester{}}

	rr := postReport(h, detectionBody(time.Now().Unix()))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	h = &routes.Reports{Ingest: &fakeIngester{err: common.ErrInvalidTimestamp}}
	rr = postReport(h, detectionBody(time.Now().Unix()))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestPostReportsMalformedBody(t *testing.T) {
	h := &routes.Reports{Ingest: &fakeIngester{}}
	rr := postReport(h, []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostReportsValidationError(t *testing.T) {
	h := &routes.Reports{Ingest: &fakeIngester{err: common.ErrInvalidTimestamp}}
	rr := postReport(h, detectionBody(time.Now().Unix()))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostReportsQueueFailure(t *testing.T) {
	h := &routes.Reports{Ingest: &fakeIngester{err: fmt.Errorf("publish report: broker down")}}
	rr := postReport(h, detectionBody(time.Now().Unix()))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// end to end through the real ingest module with fake collaborators,
// covering the documented timestamp scenarios
func TestPostReportsTimestampScenarios(t *testing.T) {
	publisher := &recordingPublisher{}
	h := &routes.Reports{Ingest: modules.NewReportIngest(&seqResolver{}, publisher)}

	now := time.Now().Unix()

	rr := postReport(h, detectionBody(now+3700))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, publisher.payloads)

	rr = postReport(h, detectionBody(now-25300))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, publisher.payloads)

	rr = postReport(h, detectionBody(now))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, publisher.payloads, 1)
}

func TestPostReportsEmptyBatch(t *testing.T) {
	publisher := &recordingPublisher{}
	h := &routes.Reports{Ingest: modules.NewReportIngest(&seqResolver{}, publisher)}

	rr := postReport(h, []byte("[]"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, publisher.payloads)
}

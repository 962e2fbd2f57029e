package common

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type ConfigDB struct {
	IP       string `json:"ip"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"db"`
}

type ConfigQueue struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
}

type ConfigStr struct {
	DB    *ConfigDB    `json:"db"`
	Queue *ConfigQueue `json:"queue"`
	Port  string       `json:"port"`
	Debug bool         `json:"debug"`
}

var Config *ConfigStr

func LoadConfig() {
	f, err := os.Open("config.json")
	if err != nil {
		fmt.Println(err)
	} else {
		if err := json.NewDecoder(f).Decode(&Config); err != nil {
			fmt.Println("failed to parse config.json:", err)
		}
		f.Close()
	}

	var logger *zap.Logger
	if Config != nil && Config.Debug {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	zap.ReplaceGlobals(logger)
}

func init() {
	LoadConfig()
}

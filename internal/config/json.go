package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend       string   `json:"backend"`
		QueryTimeout  Duration `json:"query_timeout"`
		RetryAttempts int      `json:"retry_attempts"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Influx struct {
			URL         string   `json:"url"`
			Org         string   `json:"org"`
			Token       string   `json:"token"`
			Bucket      string   `json:"bucket"`
			LoginWindow Duration `json:"login_window"`
			ListWindow  Duration `json:"list_window"`
		} `json:"influx,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			Backend:       jsonCfg.Storage.Backend,
			QueryTimeout:  time.Duration(jsonCfg.Storage.QueryTimeout),
			RetryAttempts: jsonCfg.Storage.RetryAttempts,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Influx: Influx{
				URL:         jsonCfg.Storage.Influx.URL,
				Org:         jsonCfg.Storage.Influx.Org,
				Token:       jsonCfg.Storage.Influx.Token,
				Bucket:      jsonCfg.Storage.Influx.Bucket,
				LoginWindow: time.Duration(jsonCfg.Storage.Influx.LoginWindow),
				ListWindow:  time.Duration(jsonCfg.Storage.Influx.ListWindow),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

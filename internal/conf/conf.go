package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
}

// Server holds the transport settings.
type Server struct {
	Http *Server_HTTP `json:"http"`
	Grpc *Server_GRPC `json:"grpc"`
}

type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Server_GRPC struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data holds the dataset source and the optional result cache.
type Data struct {
	Source *Data_Source `json:"source"`
	Redis  *Data_Redis  `json:"redis"`
}

// Data_Source selects where the movies, cast and crew tables are read from.
// Kind is one of "csv", "parquet", "postgres" or "http".
type Data_Source struct {
	Kind   string `json:"kind"`
	Movies string `json:"movies"`
	Cast   string `json:"cast"`
	Crew   string `json:"crew"`

	// postgres
	Database string `json:"database"`

	// http
	Url        string   `json:"url"`
	ApiKey     string   `json:"api_key"`
	MaxRetries int32    `json:"max_retries"`
	Timeout    Duration `json:"timeout"`

	LoadTimeout Duration `json:"load_timeout"`
}

type Data_Redis struct {
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	Ttl          Duration `json:"ttl"`
}

// Duration accepts either a Go duration string ("1.5s") or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	case nil:
		d.Duration = 0
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// AsDuration mirrors durationpb so call sites read the same as generated configs.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}

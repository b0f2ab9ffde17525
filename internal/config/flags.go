package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-b storage backend name (postgres, sqlite, influx)
//	-d database DSN for relational backends
//	-influx-url InfluxDB base URL
//	-influx-org InfluxDB organisation
//	-influx-token InfluxDB API token
//	-influx-bucket InfluxDB bucket name
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-query-timeout store call timeout (e.g., "5s")
//	-retry-attempts max attempts for retryable store errors
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var backend string
	var databaseDSN string
	var influxURL, influxOrg, influxToken, influxBucket string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var queryTimeout time.Duration
	var retryAttempts int

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&backend, "b", "", "Storage backend (postgres, sqlite, influx)")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&influxURL, "influx-url", "", "InfluxDB base URL")
	flag.StringVar(&influxOrg, "influx-org", "", "InfluxDB organisation")
	flag.StringVar(&influxToken, "influx-token", "", "InfluxDB API token")
	flag.StringVar(&influxBucket, "influx-bucket", "", "InfluxDB bucket")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&queryTimeout, "query-timeout", 0, "Store call timeout (e.g., 5s)")
	flag.IntVar(&retryAttempts, "retry-attempts", 0, "Max attempts for retryable store errors")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			Backend:       backend,
			QueryTimeout:  queryTimeout,
			RetryAttempts: retryAttempts,
			DB: DB{
				DSN: databaseDSN,
			},
			Influx: Influx{
				URL:    influxURL,
				Org:    influxOrg,
				Token:  influxToken,
				Bucket: influxBucket,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

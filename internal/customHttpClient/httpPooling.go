package customHttpClient

import (
	"net/http"

	"github.com/lecturelens/lecturelens/internal/config"
)

// Groq clients reuse one pooled transport to avoid per-request connection
// setup latency against the same host.

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

func GetPooledClient() *http.Client {
	return pooledClient
}

package model

// Dependency services reported by GET /health/detailed, in display order
const (
	ServicePostgres = "postgres"
	ServiceRedis    = "redis"
	ServiceRabbitMQ = "rabbitmq"
	ServiceMongoDB  = "mongodb"
)

const (
	HealthStatusHealthy = "healthy"
	HealthStatusUnknown = "unknown"
)

// DependencyServices is the fixed set of checks rendered by the dashboard
var DependencyServices = []string{
	ServicePostgres,
	ServiceRedis,
	ServiceRabbitMQ,
	ServiceMongoDB,
}

// HealthStatus is the detailed health of the backend and its dependencies
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service,omitempty"`
	Timestamp Timestamp         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Check returns the status reported for service, or "unknown" if it is missing
func (h *HealthStatus) Check(service string) string {
	if status, ok := h.Checks[service]; ok && status != "" {
		return status
	}
	return HealthStatusUnknown
}

// AllHealthy reports whether every dependency check is healthy
func (h *HealthStatus) AllHealthy() bool {
	for _, service := range DependencyServices {
		if h.Check(service) != HealthStatusHealthy {
			return false
		}
	}
	return true
}

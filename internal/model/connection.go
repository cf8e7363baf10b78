package model

// Connection is a named reference to an external data source or sink
type Connection struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ConnectionType string    `json:"connection_type"` // mongodb | postgres | mysql | bigquery | s3 | ...
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

// ConnectionList is the response of GET /connections
type ConnectionList struct {
	Connections []Connection `json:"connections"`
	Count       int          `json:"count"`
}

// Normalize replaces missing collections with empty ones
func (l *ConnectionList) Normalize() {
	if l.Connections == nil {
		l.Connections = []Connection{}
	}
}

package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the query managers built on one connection pool.
type DbManager struct {
	Queries   *Queries
	Analytics *AnalyticsManager
}

func NewDbManager(db DBTX) DbManager {
	queries := New(db)
	return DbManager{
		Queries:   queries,
		Analytics: NewAnalyticsManager(queries),
	}
}

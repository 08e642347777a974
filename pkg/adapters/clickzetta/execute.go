package clickzetta

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/core"
	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// ExecuteQuery runs sqlText and reports the outcome as data.
//
// On success the result carries the row count and the rows serialized as
// CSV. Any failure, including a closed connector, is reported through
// Success=false and Error; ExecuteQuery never returns an error value.
func (c *Connector) ExecuteQuery(ctx context.Context, sqlText string) core.ExecuteResult {
	res := core.ExecuteResult{
		SQLQuery:     sqlText,
		ResultFormat: core.FormatCSV,
	}

	queryID := uuid.NewString()
	start := time.Now()

	c.mu.Lock()
	table, err := c.runLocked(ctx, sqlText)
	sessionID := c.sessionID
	c.mu.Unlock()

	log := c.logger.With(
		slog.String("session_id", sessionID),
		slog.String("query_id", queryID))

	if err != nil {
		log.Debug("query failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		res.Error = err.Error()
		return res
	}

	out, err := serializeCSV(table)
	if err != nil {
		res.Error = adapter.WrapError(adapter.CodeExecution, err, "failed to serialize result").Error()
		return res
	}

	res.Success = true
	res.RowCount = ExtractRowCount(table)
	res.SQLReturn = out
	log.Debug("query executed",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int64("row_count", res.RowCount))
	return res
}

// Ping checks that the session answers a trivial query.
func (c *Connector) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.runLocked(ctx, "SELECT 1")
	return err
}

// runLocked executes one statement on the active session.
// Caller must hold c.mu.
func (c *Connector) runLocked(ctx context.Context, stmt string) (*session.Table, error) {
	sess, err := c.active()
	if err != nil {
		return nil, err
	}
	table, err := sess.SQL(ctx, stmt)
	if err != nil {
		return nil, adapter.WrapError(adapter.CodeExecution, err, "failed to execute query")
	}
	return table, nil
}

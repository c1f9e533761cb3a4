package maintenance

import (
	"context"
	"fmt"

	"github.com/socialnet/api/internal/common/db"
	"github.com/socialnet/api/internal/common/logger"
)

// Dependents come before the tables they reference.
var resetOrder = []string{"activity_log", "likes", "posts", "users"}

// Reset deletes every row of the application tables in a single transaction.
func Reset(ctx context.Context, tx db.TxManager, log *logger.Logger) error {
	return tx.WithTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, table := range resetOrder {
			tag, err := q.Exec(ctx, "DELETE FROM "+table)
			if err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
			log.WithFields(ctx, logger.Fields{
				"table":  table,
				"rows":   tag.RowsAffected(),
				"action": "reset_table",
			}).Info("table cleared")
		}
		return nil
	})
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CommentOperations counts comment mutations by operation and outcome.
	CommentOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_comment_operations_total",
		Help: "Comment create/edit/delete attempts by outcome",
	}, []string{"operation", "outcome"})

	// ModerationRejections counts comments rejected by the word filter.
	ModerationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_moderation_rejections_total",
		Help: "Comments rejected because they contain a banned word",
	})
)

// ObserveCommentOperation records the outcome of a comment mutation.
func ObserveCommentOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CommentOperations.WithLabelValues(operation, outcome).Inc()
}

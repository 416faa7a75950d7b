// Package observability provides Prometheus collectors for domain events.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully published posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_posts_created_total",
		Help: "Number of posts created",
	})

	// CommentsCreated counts successfully added comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_comments_created_total",
		Help: "Number of comments created",
	})

	// FollowActions counts follow/unfollow operations by action label.
	FollowActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_follow_actions_total",
		Help: "Number of follow and unfollow actions",
	}, []string{"action"})

	// FeedPagesServed counts composed feed pages by viewpoint.
	FeedPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_feed_pages_served_total",
		Help: "Number of feed pages composed, by viewpoint",
	}, []string{"viewpoint"})
)

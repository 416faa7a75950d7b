// Package feed composes ordered, paginated post views for each viewpoint:
// home, group, profile and following.
package feed

import (
	"context"
	"strconv"

	"plume/internal/models"
	"plume/internal/observability"
	"plume/internal/repository"
)

// Page is one window of a feed plus the metadata the boundary needs to
// render pagination controls.
type Page struct {
	Posts      []*models.Post `json:"posts"`
	Number     int            `json:"number"`
	PageSize   int            `json:"page_size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
}

// GroupPage is a group feed together with the group it belongs to.
type GroupPage struct {
	Group *models.Group `json:"group"`
	Page
}

// ProfilePage is an author's feed together with the author, their total
// post count and whether the requesting viewer follows them.
type ProfilePage struct {
	Author    *models.User `json:"author"`
	PostCount int64        `json:"post_count"`
	Following bool         `json:"following"`
	Page
}

// Composer builds feed pages. The page size is injected at construction;
// it is never read from global state.
type Composer struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	pageSize int
}

// NewComposer creates a feed composer with an explicit page size.
func NewComposer(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	pageSize int,
) *Composer {
	return &Composer{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		pageSize: pageSize,
	}
}

// ParsePageNumber interprets a raw page query parameter. Missing,
// non-numeric, zero or negative values all mean page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// clampPage returns the effective page number for a request: page numbers
// beyond the last valid page clamp to it instead of erroring, and an
// empty feed is a single empty page.
func clampPage(requested int, totalItems int64, pageSize int) (page, totalPages int) {
	totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	page = requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// paginate runs fetch for the clamped window and assembles the page.
// fetch receives (limit, offset) and returns the window plus the total
// match count.
func (c *Composer) paginate(requested int, fetch func(limit, offset int) ([]*models.Post, int64, error)) (Page, error) {
	// First fetch resolves the total so out-of-range requests can clamp.
	posts, total, err := fetch(c.pageSize, offsetFor(requested, c.pageSize))
	if err != nil {
		return Page{}, err
	}

	page, totalPages := clampPage(requested, total, c.pageSize)
	if page != requested || (len(posts) == 0 && total > 0) {
		// The requested window was past the end; refetch the real last page.
		posts, total, err = fetch(c.pageSize, offsetFor(page, c.pageSize))
		if err != nil {
			return Page{}, err
		}
		page, totalPages = clampPage(page, total, c.pageSize)
	}

	return Page{
		Posts:      posts,
		Number:     page,
		PageSize:   c.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}

func offsetFor(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Home composes the unfiltered feed of all posts.
func (c *Composer) Home(ctx context.Context, pageNumber int) (Page, error) {
	page, err := c.paginate(pageNumber, func(limit, offset int) ([]*models.Post, int64, error) {
		return c.posts.ListAll(ctx, limit, offset)
	})
	if err == nil {
		observability.FeedPagesServed.WithLabelValues("home").Inc()
	}
	return page, err
}

// Group composes the feed of posts belonging to the group with the given
// slug. An unknown slug is a NOT_FOUND error so the boundary can 404.
func (c *Composer) Group(ctx context.Context, slug string, pageNumber int) (GroupPage, error) {
	group, err := c.groups.GetBySlug(ctx, slug)
	if err != nil {
		return GroupPage{}, err
	}

	page, err := c.paginate(pageNumber, func(limit, offset int) ([]*models.Post, int64, error) {
		return c.posts.ListByGroupID(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return GroupPage{}, err
	}

	observability.FeedPagesServed.WithLabelValues("group").Inc()
	return GroupPage{Group: group, Page: page}, nil
}

// Profile composes an author's feed. viewerID is zero for anonymous
// viewers, in which case Following is always false.
func (c *Composer) Profile(ctx context.Context, username string, viewerID uint, pageNumber int) (ProfilePage, error) {
	author, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		return ProfilePage{}, err
	}

	page, err := c.paginate(pageNumber, func(limit, offset int) ([]*models.Post, int64, error) {
		return c.posts.ListByAuthorID(ctx, author.ID, limit, offset)
	})
	if err != nil {
		return ProfilePage{}, err
	}

	following := false
	if viewerID != 0 {
		following, err = c.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return ProfilePage{}, err
		}
	}

	observability.FeedPagesServed.WithLabelValues("profile").Inc()
	return ProfilePage{
		Author:    author,
		PostCount: page.TotalItems,
		Following: following,
		Page:      page,
	}, nil
}

// Following composes the feed of posts by authors the viewer follows.
// A viewer who follows nobody gets an empty page, never an error.
func (c *Composer) Following(ctx context.Context, viewerID uint, pageNumber int) (Page, error) {
	authorIDs, err := c.follows.ListFollowedAuthorIDs(ctx, viewerID)
	if err != nil {
		return Page{}, err
	}

	page, err := c.paginate(pageNumber, func(limit, offset int) ([]*models.Post, int64, error) {
		return c.posts.ListByAuthorIDs(ctx, authorIDs, limit, offset)
	})
	if err == nil {
		observability.FeedPagesServed.WithLabelValues("following").Inc()
	}
	return page, err
}

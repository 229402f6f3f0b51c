// Package seed fills the database with demo accounts, follows, posts and
// likes. It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// TestHandle is the account always created by the seeder, so a fresh
// database has a known api-key with a non-empty feed.
const TestHandle = "test"

// Options controls how much data is generated.
type Options struct {
	NumAccounts int
	NumPosts    int
	NumLikes    int
	NumFollows  int
	Clean       bool
	// RandSeed makes the generated data reproducible; zero picks a random seed.
	RandSeed int64
}

// DefaultOptions returns the demo-sized data set.
func DefaultOptions() Options {
	return Options{NumAccounts: 10, NumPosts: 20, NumLikes: 30, NumFollows: 15}
}

// Result reports how many rows of each kind were inserted.
type Result struct {
	Accounts int
	Follows  int
	Posts    int
	Likes    int
}

// Seeder builds and persists demo data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll deletes every row from the domain tables, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	slog.InfoContext(ctx, "clearing existing data")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return clearTables(tx)
	})
}

func clearTables(tx *gorm.DB) error {
	for _, model := range []interface{}{&models.Like{}, &models.Media{}, &models.Follow{}, &models.Post{}, &models.Account{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedIfEmpty runs Seed only when no accounts exist yet.
func (s *Seeder) SeedIfEmpty(ctx context.Context, opts Options) (*Result, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Account{}).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		slog.InfoContext(ctx, "database already populated, skipping seed", "accounts", n)
		return &Result{}, nil
	}
	return s.Seed(ctx, opts)
}

// Seed generates accounts, follows, posts and likes in one transaction.
// The test account follows at least one other account, and that account has
// at least one post.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Result, error) {
	f := gofakeit.New(opts.RandSeed)
	res := &Result{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Clean {
			if err := clearTables(tx); err != nil {
				return err
			}
		}

		accounts := buildAccounts(f, opts.NumAccounts)
		if err := tx.Create(&accounts).Error; err != nil {
			return fmt.Errorf("create accounts: %w", err)
		}
		res.Accounts = len(accounts)

		ids := make([]uint, len(accounts))
		var testID uint
		for i, a := range accounts {
			ids[i] = a.ID
			if a.Handle == TestHandle {
				testID = a.ID
			}
		}

		follows, featured := buildFollows(f, ids, testID, opts.NumFollows)
		if len(follows) > 0 {
			if err := tx.Create(&follows).Error; err != nil {
				return fmt.Errorf("create follows: %w", err)
			}
		}
		res.Follows = len(follows)

		posts := buildPosts(f, ids, featured, opts.NumPosts)
		if len(posts) > 0 {
			if err := tx.Create(&posts).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}
		res.Posts = len(posts)

		postIDs := make([]uint, len(posts))
		for i, p := range posts {
			postIDs[i] = p.ID
		}
		likes := buildLikes(f, ids, postIDs, opts.NumLikes)
		if len(likes) > 0 {
			if err := tx.Create(&likes).Error; err != nil {
				return fmt.Errorf("create likes: %w", err)
			}
		}
		res.Likes = len(likes)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "database seeded",
		"accounts", res.Accounts,
		"follows", res.Follows,
		"posts", res.Posts,
		"likes", res.Likes,
	)
	return res, nil
}

// buildAccounts returns n random accounts with unique handles plus the test account.
func buildAccounts(f *gofakeit.Faker, n int) []models.Account {
	seen := map[string]bool{TestHandle: true}
	accounts := make([]models.Account, 0, n+1)

	for len(accounts) < n {
		first, last := f.FirstName(), f.LastName()
		handle := strings.ToLower(first[:1] + last)
		for i := 2; seen[handle]; i++ {
			handle = fmt.Sprintf("%s%d", strings.ToLower(first[:1]+last), i)
		}
		seen[handle] = true
		accounts = append(accounts, models.Account{
			Handle:      truncate(handle, models.MaxHandleLength),
			DisplayName: truncate(first+" "+last, models.MaxDisplayNameLength),
		})
	}
	return append(accounts, models.Account{Handle: TestHandle, DisplayName: "Test User"})
}

// buildFollows picks up to n distinct non-self pairs. When testID is set and
// another account exists, the test account follows one account, which is
// returned as featured.
func buildFollows(f *gofakeit.Faker, ids []uint, testID uint, n int) ([]models.Follow, uint) {
	if len(ids) < 2 {
		return nil, 0
	}
	if limit := len(ids) * (len(ids) - 1); n > limit {
		n = limit
	}

	type pair struct{ from, to uint }
	seen := make(map[pair]bool, n+1)
	follows := make([]models.Follow, 0, n+1)
	add := func(from, to uint) {
		p := pair{from, to}
		if from == to || seen[p] {
			return
		}
		seen[p] = true
		follows = append(follows, models.Follow{FollowerID: from, FollowingID: to})
	}

	var featured uint
	if testID != 0 {
		for _, id := range ids {
			if id != testID {
				featured = id
				break
			}
		}
		add(testID, featured)
	}

	for len(follows) < n {
		add(ids[f.Number(0, len(ids)-1)], ids[f.Number(0, len(ids)-1)])
	}
	return follows, featured
}

// buildPosts creates n posts by random authors, plus one by featured when set.
func buildPosts(f *gofakeit.Faker, ids []uint, featured uint, n int) []models.Post {
	if len(ids) == 0 {
		return nil
	}
	posts := make([]models.Post, 0, n+1)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			AuthorID: ids[f.Number(0, len(ids)-1)],
			Content:  truncate(f.Sentence(10), models.MaxContentLength),
		})
	}
	if featured != 0 {
		posts = append(posts, models.Post{
			AuthorID: featured,
			Content:  truncate(f.Sentence(10), models.MaxContentLength),
		})
	}
	return posts
}

// buildLikes picks up to n distinct (account, post) pairs.
func buildLikes(f *gofakeit.Faker, accountIDs, postIDs []uint, n int) []models.Like {
	if len(accountIDs) == 0 || len(postIDs) == 0 {
		return nil
	}
	if limit := len(accountIDs) * len(postIDs); n > limit {
		n = limit
	}

	type pair struct{ account, post uint }
	seen := make(map[pair]bool, n)
	likes := make([]models.Like, 0, n)
	for len(likes) < n {
		p := pair{accountIDs[f.Number(0, len(accountIDs)-1)], postIDs[f.Number(0, len(postIDs)-1)]}
		if seen[p] {
			continue
		}
		seen[p] = true
		likes = append(likes, models.Like{AccountID: p.account, PostID: p.post})
	}
	return likes
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

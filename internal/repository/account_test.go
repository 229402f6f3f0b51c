package repository

import (
	"context"
	"testing"

	"chirp/internal/models"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice", "Alice")

	ok, err := repo.Exists(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, alice.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)

	id, found, err := repo.IDByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, alice.ID, id)

	_, found, err = repo.IDByHandle(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAccountRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &models.Account{Handle: "carol", DisplayName: "Carol"}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotZero(t, account.ID)

	err := repo.Create(ctx, &models.Account{Handle: "carol", DisplayName: "Other"})
	assert.True(t, models.IsCode(err, models.CodeConflict), "got %v", err)
}

func TestAccountRepository_FollowProjections(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	bob := testutil.CreateAccount(t, db, "bob", "Bob")
	carol := testutil.CreateAccount(t, db, "carol", "Carol")
	testutil.CreateFollow(t, db, bob.ID, alice.ID)
	testutil.CreateFollow(t, db, carol.ID, alice.ID)
	testutil.CreateFollow(t, db, alice.ID, carol.ID)

	followers, err := repo.FollowersOf(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "bob", followers[0].Handle)
	assert.Equal(t, "carol", followers[1].Handle)

	following, err := repo.FollowingOf(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].ID)

	following, err = repo.FollowingOf(ctx, bob.ID+carol.ID+alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestAccountRepository_ProfileWithConnections(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	bob := testutil.CreateAccount(t, db, "bob", "Bob")
	testutil.CreateFollow(t, db, bob.ID, alice.ID)

	tests := []struct {
		name     string
		query    models.ProfileQuery
		wantID   uint
		wantCode string
	}{
		{"by handle", models.ProfileQuery{Handle: "alice"}, alice.ID, ""},
		{"by id", models.ProfileQuery{ID: bob.ID}, bob.ID, ""},
		{"handle wins over id", models.ProfileQuery{Handle: "alice", ID: bob.ID}, alice.ID, ""},
		{"neither set", models.ProfileQuery{}, 0, models.CodeNotFound},
		{"unknown handle", models.ProfileQuery{Handle: "nobody"}, 0, models.CodeNotFound},
		{"unknown id", models.ProfileQuery{ID: 999}, 0, models.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := repo.ProfileWithConnections(ctx, tt.query)
			if tt.wantCode != "" {
				assert.True(t, models.IsCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, profile)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, profile.ID)
		})
	}

	profile, err := repo.ProfileWithConnections(ctx, models.ProfileQuery{Handle: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, []models.AccountSummary{{ID: bob.ID, Name: "Bob"}}, profile.Followers)
	assert.Empty(t, profile.Following)
	assert.NotNil(t, profile.Following)
}

func TestAccountRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	bob := testutil.CreateAccount(t, db, "bob", "Bob")
	alicePost := testutil.CreatePost(t, db, alice.ID, "by alice")
	bobPost := testutil.CreatePost(t, db, bob.ID, "by bob")
	require.NoError(t, db.Create(&models.Like{AccountID: alice.ID, PostID: bobPost.ID}).Error)
	require.NoError(t, db.Create(&models.Like{AccountID: bob.ID, PostID: alicePost.ID}).Error)
	testutil.CreateFollow(t, db, alice.ID, bob.ID)
	testutil.CreateFollow(t, db, bob.ID, alice.ID)

	require.NoError(t, repo.Delete(ctx, alice.ID))

	assert.Zero(t, testutil.Count(t, db, &models.Post{}, "author_id = ?", alice.ID))
	assert.Zero(t, testutil.Count(t, db, &models.Like{}))
	assert.Zero(t, testutil.Count(t, db, &models.Follow{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Post{}))

	err := repo.Delete(ctx, alice.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

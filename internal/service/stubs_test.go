package service

import (
	"context"
	"io"

	"chirp/internal/models"
)

type accountRepoStub struct {
	createFn      func(context.Context, *models.Account) error
	deleteFn      func(context.Context, uint) error
	existsFn      func(context.Context, uint) (bool, error)
	idByHandleFn  func(context.Context, string) (uint, bool, error)
	followersOfFn func(context.Context, uint) ([]models.Account, error)
	followingOfFn func(context.Context, uint) ([]models.Account, error)
	profileFn     func(context.Context, models.ProfileQuery) (*models.Profile, error)
}

func (s *accountRepoStub) Create(ctx context.Context, account *models.Account) error {
	return s.createFn(ctx, account)
}
func (s *accountRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *accountRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *accountRepoStub) IDByHandle(ctx context.Context, handle string) (uint, bool, error) {
	return s.idByHandleFn(ctx, handle)
}
func (s *accountRepoStub) FollowersOf(ctx context.Context, id uint) ([]models.Account, error) {
	return s.followersOfFn(ctx, id)
}
func (s *accountRepoStub) FollowingOf(ctx context.Context, id uint) ([]models.Account, error) {
	return s.followingOfFn(ctx, id)
}
func (s *accountRepoStub) ProfileWithConnections(ctx context.Context, q models.ProfileQuery) (*models.Profile, error) {
	return s.profileFn(ctx, q)
}

type postRepoStub struct {
	existsFn     func(context.Context, uint) (bool, error)
	addPostFn    func(context.Context, string, string, []uint) (uint, error)
	deletePostFn func(context.Context, string, uint) error
	feedForFn    func(context.Context, string) ([]models.PostView, error)
}

func (s *postRepoStub) Exists(ctx context.Context, postID uint) (bool, error) {
	return s.existsFn(ctx, postID)
}
func (s *postRepoStub) AddPost(ctx context.Context, handle, content string, mediaIDs []uint) (uint, error) {
	return s.addPostFn(ctx, handle, content, mediaIDs)
}
func (s *postRepoStub) DeletePost(ctx context.Context, handle string, postID uint) error {
	return s.deletePostFn(ctx, handle, postID)
}
func (s *postRepoStub) FeedFor(ctx context.Context, handle string) ([]models.PostView, error) {
	return s.feedForFn(ctx, handle)
}

type mediaRepoStub struct {
	linkForFn  func(context.Context, uint) (string, error)
	addMediaFn func(context.Context, string) (uint, error)
}

func (s *mediaRepoStub) LinkFor(ctx context.Context, mediaID uint) (string, error) {
	return s.linkForFn(ctx, mediaID)
}
func (s *mediaRepoStub) AddMedia(ctx context.Context, link string) (uint, error) {
	return s.addMediaFn(ctx, link)
}

type saverStub struct {
	saveFn func(context.Context, string, string, io.Reader) (string, error)
}

func (s *saverStub) Save(ctx context.Context, owner, filename string, r io.Reader) (string, error) {
	return s.saveFn(ctx, owner, filename, r)
}

func knownHandles(handles map[string]uint) func(context.Context, string) (uint, bool, error) {
	return func(_ context.Context, handle string) (uint, bool, error) {
		id, ok := handles[handle]
		return id, ok, nil
	}
}

package services

import (
	"context"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// ViewMode is what a request should show, derived from who is signed in and
// which profile the share link points at.
type ViewMode string

const (
	ModeSignIn     ViewMode = "sign_in"
	ModePublicView ViewMode = "public_view"
	ModeOwner      ViewMode = "owner"
	ModeVisitor    ViewMode = "visitor"
)

// ResolveViewMode maps (viewer, ?uid=) to a mode. An empty uid, or the
// viewer's own id, means the viewer's own profile.
func ResolveViewMode(viewerID, uid string) ViewMode {
	switch {
	case viewerID == "" && uid == "":
		return ModeSignIn
	case viewerID == "":
		return ModePublicView
	case uid == "" || uid == viewerID:
		return ModeOwner
	default:
		return ModeVisitor
	}
}

// SessionView is everything needed to draw the first screen.
type SessionView struct {
	Mode     ViewMode
	ViewerID string
	TargetID string

	// Viewer is the signed-in user's own document, nil if they have none yet.
	Viewer *models.ProfileDocument
	// Target is the document being shown; TargetErr explains why it is
	// missing (ErrProfileNotFound, ErrNeedsOnboarding or *AccessDeniedError).
	Target    *LoadResult
	TargetErr error
	// Following is set when the viewer lists the target as a friend.
	Following bool
}

// ResolveSession resolves the view mode and loads the documents it needs.
// A visitor's own document and the target are fetched concurrently. Only
// context cancellation is returned as an error; load outcomes are reported
// in the view.
func (s *ProfileService) ResolveSession(ctx context.Context, viewerID, uid string) (*SessionView, error) {
	view := &SessionView{Mode: ResolveViewMode(viewerID, uid), ViewerID: viewerID}

	switch view.Mode {
	case ModeSignIn:
		return view, nil

	case ModeOwner:
		view.TargetID = viewerID
		view.Target, view.TargetErr = s.Load(ctx, viewerID, false, viewerID)
		if view.Target != nil {
			view.Viewer = view.Target.Profile
		}

	case ModePublicView:
		view.TargetID = uid
		view.Target, view.TargetErr = s.Load(ctx, uid, true, "")

	case ModeVisitor:
		view.TargetID = uid
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if own, err := s.Load(gctx, viewerID, false, viewerID); err == nil {
				view.Viewer = own.Profile
			}
			return gctx.Err()
		})
		g.Go(func() error {
			view.Target, view.TargetErr = s.Load(gctx, uid, true, viewerID)
			return gctx.Err()
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if view.Viewer != nil {
			view.Following = view.Viewer.IsFriend(uid)
		}
	}
	return view, ctx.Err()
}

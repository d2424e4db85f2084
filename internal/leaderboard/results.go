package leaderboard

import "context"

// Results is the game-over flow shared by the front ends: a qualifying score
// asks for a name, then the finished game is submitted and the updated
// leaderboard kept for display.
type Results struct {
	Score  int
	Naming bool    // Waiting for the player's name
	Name   []byte  // Name typed so far
	Board  []Entry // Leaderboard after submission
	Err    error   // Store failure; only the score can be shown
}

// Begin starts the flow for a finished game. A non-qualifying score is
// submitted under Anonymous immediately. With a nil store only the score
// is kept.
func Begin(ctx context.Context, store Store, score int) Results {
	r := Results{Score: score}
	if store == nil {
		return r
	}
	ok, err := store.Qualifies(ctx, score)
	if err != nil {
		r.Err = err
		return r
	}
	if ok {
		r.Naming = true
		return r
	}
	r.submit(ctx, store, Anonymous)
	return r
}

// Type applies name-entry edits in the order they were typed: printable
// bytes are appended up to MaxNameLength and '\b' erases the last one.
func (r *Results) Type(edits []byte) {
	if !r.Naming {
		return
	}
	for _, b := range edits {
		switch {
		case b == '\b':
			if len(r.Name) > 0 {
				r.Name = r.Name[:len(r.Name)-1]
			}
		case b >= ' ' && b < 0x7f && len(r.Name) < MaxNameLength:
			r.Name = append(r.Name, b)
		}
	}
}

// Submit ends name entry and records the game under the typed name.
func (r *Results) Submit(ctx context.Context, store Store) error {
	if !r.Naming {
		return nil
	}
	r.Naming = false
	return r.submit(ctx, store, string(r.Name))
}

func (r *Results) submit(ctx context.Context, store Store, name string) error {
	board, err := store.Submit(ctx, name, r.Score)
	if err != nil {
		r.Err = err
		return err
	}
	r.Board = board
	return nil
}

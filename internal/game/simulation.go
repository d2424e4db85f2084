package game

import (
	"time"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

// Running reports whether the simulation advances in the current phase.
func (w *World) Running() bool {
	return w.phase == PhasePlaying || w.phase == PhaseLevelTransition
}

// Step advances the world by delta using this frame's input. Outside of
// play it does nothing. Entities advance first, then collisions resolve,
// then aliens spawn and the level advances once the field is clear.
func (w *World) Step(delta time.Duration, in input.State) error {
	if !w.Running() {
		return nil
	}
	delta = max(delta, 0)
	dt := object.Millis(delta)

	if w.phase == PhaseLevelTransition {
		w.TransitionTimer -= dt
		if w.TransitionTimer <= 0 {
			w.TransitionTimer = 0
			if err := w.transition(PhasePlaying); err != nil {
				return err
			}
		}
	}

	if err := w.updateObjects(w.updateContext(delta, in)); err != nil {
		return err
	}

	w.resolveCollisions()
	if w.phase == PhaseGameOver {
		return nil
	}

	w.updateAlienSpawn(dt)
	return w.advanceLevel()
}

// updateObjects updates all entities in draw order and removes the ones that
// request removal. Objects spawned meanwhile join after the cycle.
func (w *World) updateObjects(ctx object.UpdateContext) error {
	var err error
	if w.Ships, err = updateAll(ctx, w.Ships); err != nil {
		return err
	}
	if w.Bullets, err = updateAll(ctx, w.Bullets); err != nil {
		return err
	}
	if w.Asteroids, err = updateAll(ctx, w.Asteroids); err != nil {
		return err
	}
	if w.Explosions, err = updateAll(ctx, w.Explosions); err != nil {
		return err
	}
	if w.Aliens, err = updateAll(ctx, w.Aliens); err != nil {
		return err
	}

	w.FlushSpawned()
	return nil
}

// updateAll updates every item and keeps the ones that did not ask to be
// removed, reusing the backing array.
func updateAll[T object.Object](ctx object.UpdateContext, items []T) ([]T, error) {
	kept := items[:0]
	for i, obj := range items {
		remove, err := obj.Update(ctx)
		if err != nil {
			return append(kept, items[i:]...), err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(items[len(kept):])
	return kept, nil
}

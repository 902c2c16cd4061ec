package stride

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Intent is one tick's worth of input for a character, sampled fresh each
// tick and never persisted
type Intent struct {
	Move mgl64.Vec2
	Look mgl64.Vec2
}

// IntentFunc samples the current intent for a character
type IntentFunc func(*Character) Intent

// Crowd steps a set of independent characters against a shared scene.
// Characters never collide with each other; each one only reads the scene
// and mutates its own pose, so they advance in parallel safely. Step must
// not run concurrently with scene mutation.
type Crowd struct {
	Characters []*Character
	Workers    int
}

// Add adds a character to the crowd
func (cw *Crowd) Add(character *Character) {
	cw.Characters = append(cw.Characters, character)
}

// Remove removes a character from the crowd
func (cw *Crowd) Remove(character *Character) {
	k := -1
	for i, ch := range cw.Characters {
		if ch == character {
			k = i
			break
		}
	}

	if k != -1 {
		cw.Characters = append(cw.Characters[:k], cw.Characters[k+1:]...)
	}
}

// Step advances every character by one tick, sampling each one's intent
// through intents
func (cw *Crowd) Step(dt float64, intents IntentFunc) {
	workers := max(DEFAULT_WORKERS, cw.Workers)
	task(workers, cw.Characters, func(character *Character) {
		intent := intents(character)
		character.Advance(dt, intent.Move, intent.Look)
	})
}

func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

package services

import (
	"math/rand"
	"time"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/types"
)

// ActivityBalancer spreads the interactive-activity types across a course
// so consecutive lessons never repeat an activity. The random source is
// injected so assignments are reproducible under a fixed seed.
type ActivityBalancer struct {
	log   *logger.Logger
	rnd   *rand.Rand
	kinds []types.ActivityType
}

func NewActivityBalancer(log *logger.Logger, rnd *rand.Rand) *ActivityBalancer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ActivityBalancer{
		log:   log.With("service", "ActivityBalancer"),
		rnd:   rnd,
		kinds: types.AllActivityTypes(),
	}
}

// Assign tags every lesson in flattened order. With two or more activity
// types no two adjacent lessons share a type; with a single type
// repetition is unavoidable.
func (b *ActivityBalancer) Assign(lessons []*types.OutlineLesson) {
	if len(lessons) == 0 || len(b.kinds) == 0 {
		return
	}

	k := len(b.kinds)
	blocks := (len(lessons)+k-1)/k + 1 // ceil(n/k)+1 full permutations

	queue := make([]types.ActivityType, 0, blocks*k)
	var lastOfPrev types.ActivityType

	for i := 0; i < blocks; i++ {
		block := make([]types.ActivityType, k)
		copy(block, b.kinds)
		b.rnd.Shuffle(k, func(x, y int) { block[x], block[y] = block[y], block[x] })

		// Break the seam between blocks.
		if i > 0 && k > 1 && block[0] == lastOfPrev {
			block[0], block[1] = block[1], block[0]
		}

		queue = append(queue, block...)
		lastOfPrev = block[k-1]
	}

	for i, lesson := range lessons {
		selected := queue[0]
		queue = queue[1:]

		// Safety pass: never repeat the previous lesson's type.
		if i > 0 && k > 1 && lessons[i-1].ActivityType == selected {
			next := queue[0]
			queue = queue[1:]
			queue = append(queue, selected)
			selected = next
		}

		lesson.ActivityType = selected
		b.log.Debug("Assigned activity", "lesson", lesson.Title, "activity", selected)
	}
}

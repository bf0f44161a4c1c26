package types

// In-flight document types for a generation run. The outline is produced
// once by the completion service and its lessons are filled in place as
// the pipeline advances; nothing here is persisted until assembly.

type Outline struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	ThumbnailQuery string           `json:"thumbnail_query"`
	Modules        []*OutlineModule `json:"modules"`
}

type OutlineModule struct {
	Title   string           `json:"title"`
	Lessons []*OutlineLesson `json:"lessons"`
}

// OutlineLesson starts as a stub (title + concept) and is mutated into a
// full lesson by the content and media stages.
type OutlineLesson struct {
	Title   string `json:"title"`
	Concept string `json:"concept"`

	// Assigned by the activity balancer before content generation.
	ActivityType ActivityType `json:"-"`

	// Filled by the content stage.
	ContentMD string          `json:"content,omitempty"`
	Quiz      []QuizItem      `json:"quiz,omitempty"`
	Activity  *ActivityConfig `json:"activity,omitempty"`

	// Filled by the media stage. Empty means the branch failed.
	SlideURL string `json:"slide_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

// TotalLessons is fixed once the outline is parsed; it never changes for
// the rest of the run.
func (o *Outline) TotalLessons() int {
	n := 0
	for _, m := range o.Modules {
		if m != nil {
			n += len(m.Lessons)
		}
	}
	return n
}

// FlatLessons returns every lesson stub in module order. The balancer and
// the per-lesson loop both walk this order.
func (o *Outline) FlatLessons() []*OutlineLesson {
	out := make([]*OutlineLesson, 0, o.TotalLessons())
	for _, m := range o.Modules {
		if m == nil {
			continue
		}
		out = append(out, m.Lessons...)
	}
	return out
}

type QuizItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// GeneratedCourse is the assembled document handed back by the pipeline:
// outline metadata plus fully populated lessons, ready for persistence.
type GeneratedCourse struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Modules      []*OutlineModule `json:"modules"`
}

// GenerationContext carries the per-run inputs every stage needs for
// prompt construction and progress reporting.
type GenerationContext struct {
	Topic          string
	SupportingDocs string
	TotalLessons   int
	LessonNumber   int
}

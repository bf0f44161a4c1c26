package types

import (
	"encoding/json"
	"fmt"
)

// ActivityType tags the interactive exercise embedded in a lesson. The
// values are the fence-block identifiers the course player dispatches on,
// so they are part of the stored content format.
type ActivityType string

const (
	ActivityTone     ActivityType = "ai-tone"
	ActivityRoleplay ActivityType = "ai-dojo"
	ActivityRedline  ActivityType = "ai-redline"
	ActivityDebate   ActivityType = "ai-debate"
	ActivitySwipe    ActivityType = "ai-swipe"
)

func AllActivityTypes() []ActivityType {
	return []ActivityType{ActivityTone, ActivityRoleplay, ActivityRedline, ActivityDebate, ActivitySwipe}
}

// ActivityConfig is the tagged union the lesson generator emits. Config is
// kept raw; Decode parses it into the variant matching Type.
type ActivityConfig struct {
	Type   ActivityType    `json:"type"`
	Config json.RawMessage `json:"config"`
}

type ToneConfig struct {
	Context       string `json:"context"`
	IncomingEmail string `json:"incoming_email"`
	InitialText   string `json:"initialText"`
}

type RoleplayConfig struct {
	ScenarioID  string   `json:"scenarioId"`
	Intro       string   `json:"intro"`
	Role        string   `json:"role"`
	Objective   string   `json:"objective"`
	Skills      []string `json:"skills"`
	InitialText string   `json:"initialText"`
}

type RedlineItem struct {
	Content  string `json:"content"`
	IsRisk   bool   `json:"isRisk"`
	Feedback string `json:"feedback,omitempty"`
}

type RedlineConfig struct {
	Title string        `json:"title"`
	Items []RedlineItem `json:"items"`
	// Some model outputs use "mistakes" for the same list.
	Mistakes []RedlineItem `json:"mistakes,omitempty"`
}

type DebateConfig struct {
	Topic   string   `json:"topic"`
	AISide  string   `json:"aiSide"`
	Stances []string `json:"stances,omitempty"`
}

type SwipeCard struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback,omitempty"`
}

type SwipeLabels struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type SwipeConfig struct {
	Title  string      `json:"title"`
	Cards  []SwipeCard `json:"cards"`
	Labels SwipeLabels `json:"labels"`
}

// Decode parses Config into the variant struct for Type.
func (a *ActivityConfig) Decode() (any, error) {
	if a == nil {
		return nil, fmt.Errorf("nil activity config")
	}
	var out any
	switch a.Type {
	case ActivityTone:
		out = &ToneConfig{}
	case ActivityRoleplay:
		out = &RoleplayConfig{}
	case ActivityRedline:
		out = &RedlineConfig{}
	case ActivityDebate:
		out = &DebateConfig{}
	case ActivitySwipe:
		out = &SwipeConfig{}
	default:
		return nil, fmt.Errorf("unknown activity type %q", a.Type)
	}
	if err := json.Unmarshal(a.Config, out); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", a.Type, err)
	}
	return out, nil
}

// Validate checks the schema constraints that make an activity unusable
// when violated. Redline is the only type the player cannot render with
// an empty payload, so a redline config must carry at least one item.
func (a *ActivityConfig) Validate() error {
	v, err := a.Decode()
	if err != nil {
		return err
	}
	if rc, ok := v.(*RedlineConfig); ok {
		if len(rc.Items) == 0 && len(rc.Mistakes) == 0 {
			return fmt.Errorf("redline config has no items or mistakes")
		}
	}
	return nil
}

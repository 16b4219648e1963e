package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/tangshi/providers/store"
)

// Date is an in-game calendar date.
type Date struct {
	YearTitle string `json:"yearTitle"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

// World is the shared setting and calendar.
type World struct {
	Dynasty            string `json:"dynasty"`
	EmperorName        string `json:"emperorName"`
	YearTitle          string `json:"yearTitle"`
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	Weather            string `json:"weather"`
	Season             string `json:"season"`
	TownName           string `json:"townName"`
	CountyName         string `json:"countyName"`
	CurrentLocation    string `json:"currentLocation"`
	IsPoetryPartyMonth bool   `json:"isPoetryPartyMonth"`
	IsExamMonth        bool   `json:"isExamMonth"`
}

// Stats are the protagonist's attributes.
type Stats struct {
	LiteraryTalent int `json:"literaryTalent"`
	Charm          int `json:"charm"`
	Health         int `json:"health"`
	Reputation     int `json:"reputation"`
}

// Protagonist is the player character.
type Protagonist struct {
	Name         string `json:"name"`
	CourtesyName string `json:"courtesyName"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	Identity     string `json:"identity"`
	Stats        Stats  `json:"stats"`
	Money        int    `json:"money"`
	Career       string `json:"career"`
	CareerLevel  int    `json:"careerLevel"`
	PoetryCount  int    `json:"poetryCount"`
}

// Character is a poet the protagonist has met.
type Character struct {
	ID string `json:"id"`
	Poet
}

// Poem is an entry of the poetry collection.
type Poem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	Author     string `json:"author,omitempty"`
	Commentary string `json:"commentary,omitempty"`
	Ranking    int    `json:"ranking,omitempty"`
	Grade      string `json:"grade,omitempty"`
	Date       Date   `json:"date"`
}

// Chronicle entry types.
const (
	ChronicleMet        = "结识"
	ChronicleInspired   = "诗兴"
	ChronicleParty      = "诗会"
	ChronicleExam       = "科举"
	ChronicleCompletion = "创作"
)

// ChronicleEntry is one line of the game's journal.
type ChronicleEntry struct {
	ID         string   `json:"id"`
	Date       Date     `json:"date"`
	Content    string   `json:"content"`
	Characters []string `json:"characters"`
	Type       string   `json:"type"`
}

// Session is one saved game.
type Session struct {
	ID          string           `json:"id"`
	World       World            `json:"world"`
	Protagonist Protagonist      `json:"protagonist"`
	Characters  []Character      `json:"characters"`
	Poems       []Poem           `json:"poetryCollection"`
	Chronicles  []ChronicleEntry `json:"chronicles"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewSession starts a game in spring of the first year of 天宝 in 长安.
// An empty gender defaults to 女.
func NewSession(name, gender string) *Session {
	if gender == "" {
		gender = "女"
	}

	return &Session{
		ID: uuid.NewString(),
		World: World{
			Dynasty:         "大唐",
			EmperorName:     "李隆基",
			YearTitle:       "天宝",
			Year:            1,
			Month:           3,
			Weather:         "晴",
			Season:          "春",
			TownName:        "长安",
			CountyName:      "京兆",
			CurrentLocation: "长安城",
			IsExamMonth:     true,
		},
		Protagonist: Protagonist{
			Name:     name,
			Gender:   gender,
			Age:      18,
			Identity: "游学才女",
			Stats: Stats{
				LiteraryTalent: 30,
				Charm:          40,
				Health:         100,
				Reputation:     0,
			},
			Money:  1000,
			Career: "无",
		},
		Characters: []Character{},
		Poems:      []Poem{},
		Chronicles: []ChronicleEntry{},
	}
}

// LoadSession reads the session saved under id. Fields missing from the
// save keep their NewSession defaults.
func LoadSession(ctx context.Context, st store.Store, id string) (*Session, error) {
	data, err := st.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	s := NewSession("", "")
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.ID != id {
		s.ID = id
	}

	return s, nil
}

// Save writes the session under its ID.
func (s *Session) Save(ctx context.Context, st store.Store) error {
	s.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	if err := st.Save(ctx, s.ID, data); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}

	return nil
}

// Today returns the current in-game date.
func (s *Session) Today() Date {
	return Date{YearTitle: s.World.YearTitle, Year: s.World.Year, Month: s.World.Month}
}

func (s *Session) record(kind, content string, characters ...string) {
	s.Chronicles = append(s.Chronicles, ChronicleEntry{
		ID:         uuid.NewString(),
		Date:       s.Today(),
		Content:    content,
		Characters: characters,
		Type:       kind,
	})
}

func (s *Session) collect(p Poem) {
	p.ID = uuid.NewString()
	p.Date = s.Today()
	s.Poems = append(s.Poems, p)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

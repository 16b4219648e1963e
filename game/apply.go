package game

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Stat bounds.
const (
	minTalent         = 0
	maxTalent         = 100
	minReputation     = -100
	maxReputation     = 100
	minPoetReputation = 0
	maxPoetReputation = 100
)

const (
	minPartyPoetTalent = 30
	defaultPoetTalent  = 50
	minPartyGuests     = 3
	maxPartyGuests     = 5
	poetryPartyChance  = 0.3
	yearTitleEraLength = 30
	nameSeparator      = "、"
)

var (
	yearTitles = []string{"开元", "天宝", "贞观", "永徽", "调露", "神龙", "景龙", "先天", "乾封"}
	weathers   = []string{"晴", "阴", "雨", "雪", "雾"}
)

// AddPoets adds the poets not yet in the roster and returns how many were
// added. Poets are matched by name.
func (s *Session) AddPoets(poets []Poet) int {
	known := make(map[string]bool, len(s.Characters)+len(poets))
	for _, c := range s.Characters {
		known[c.Name] = true
	}

	var names []string
	for _, p := range poets {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || known[p.Name] {
			continue
		}
		known[p.Name] = true
		s.Characters = append(s.Characters, Character{ID: "poet_" + uuid.NewString(), Poet: p})
		names = append(names, p.Name)
	}

	if len(names) > 0 {
		s.record(ChronicleMet,
			fmt.Sprintf("在%s结识了%d位文人雅士：%s。", s.World.TownName, len(names), strings.Join(names, nameSeparator)),
			names...)
	}

	return len(names)
}

// ApplyEvents folds a month's events into the protagonist's stats, the
// poetry collection and the chronicle.
func (s *Session) ApplyEvents(events MonthlyEvents) {
	for _, e := range events.Events {
		s.addTalent(e.LiteraryTalentChange)
		s.addReputation(e.ReputationChange)

		s.collect(Poem{
			Title:      e.PoemTitle,
			Content:    e.PoemContent,
			Type:       e.PoemType,
			Author:     s.Protagonist.Name,
			Commentary: e.PoetryCommentary,
		})
		s.Protagonist.PoetryCount++

		s.record(ChronicleInspired,
			fmt.Sprintf("%s\n\n诗题：《%s》\n%s\n\n%s", e.Description, e.PoemTitle, e.PoemContent, e.PoetryCommentary),
			s.Protagonist.Name)
	}
}

// PartyGuests picks the poets invited to a poetry party: the most talented
// poets with a literary talent of at least 30, at most five of them.
func (s *Session) PartyGuests() ([]Character, error) {
	var eligible []Character
	for _, c := range s.Characters {
		if talentOf(c) >= minPartyPoetTalent {
			eligible = append(eligible, c)
		}
	}

	slices.SortStableFunc(eligible, func(a, b Character) int {
		return cmp.Compare(talentOf(b), talentOf(a))
	})

	if len(eligible) < minPartyGuests {
		return nil, fmt.Errorf("%w: %d eligible, need %d", ErrNotEnoughPoets, len(eligible), minPartyGuests)
	}

	return eligible[:min(len(eligible), maxPartyGuests)], nil
}

// ApplyParty applies each participant's reputation change and collects
// their poems. Entries naming nobody in the session are skipped.
func (s *Session) ApplyParty(party PoetryParty) {
	attendees := []string{}

	for _, entry := range party.Participants {
		name := strings.TrimSpace(entry.Name)

		if name != "" && name == s.Protagonist.Name {
			s.addReputation(entry.ReputationChange)
			s.Protagonist.PoetryCount++
		} else if c := s.character(name); c != nil {
			c.Reputation = clamp(c.Reputation+entry.ReputationChange, minPoetReputation, maxPoetReputation)
		} else {
			continue
		}

		attendees = append(attendees, name)
		s.collect(Poem{
			Title:      entry.PoemTitle,
			Content:    entry.PoemContent,
			Type:       entry.PoemType,
			Author:     name,
			Commentary: entry.PoetryCommentary,
			Ranking:    entry.Ranking,
		})
	}

	s.record(ChronicleParty,
		fmt.Sprintf("参加%s，%s。魁首：%s。%s", party.PartyTitle, party.PartyDescription, party.Champion, party.ChampionReason),
		attendees...)
}

// ApplyExam applies an examination result. A career advancement with a new
// title replaces the protagonist's identity and sets the career level from
// the grade.
func (s *Session) ApplyExam(exam ExamResult) {
	s.addTalent(exam.LiteraryTalentChange)
	s.addReputation(exam.ReputationChange)

	promoted := exam.CareerAdvancement && exam.NewTitle != ""
	if promoted {
		s.Protagonist.Identity = exam.NewTitle
		s.Protagonist.Career = exam.NewTitle
		s.Protagonist.CareerLevel = careerLevel(exam.Grade)
	}

	s.collect(Poem{
		Title:      exam.PoemTitle,
		Content:    exam.PoemContent,
		Type:       exam.PoemType,
		Author:     s.Protagonist.Name,
		Commentary: exam.ExaminerComment,
		Grade:      exam.Grade,
	})

	content := fmt.Sprintf("参加%s，考题：%s。\n\n诗作：《%s》\n%s\n\n考官评语：%s\n\n等第：%s。%s",
		exam.ExamTitle, exam.ExamQuestion, exam.PoemTitle, exam.PoemContent, exam.ExaminerComment, exam.Grade, exam.GradeReason)
	if promoted {
		content += " 获得官职：" + exam.NewTitle
	}
	s.record(ChronicleExam, content, s.Protagonist.Name)
}

// ApplyCompletion collects a completed poem written in format.
func (s *Session) ApplyCompletion(completion PoemCompletion, format string) {
	s.addTalent(completion.LiteraryTalentChange)

	s.collect(Poem{
		Title:      "无题",
		Content:    completion.CompletedPoem,
		Type:       format,
		Author:     s.Protagonist.Name,
		Commentary: completion.PoetryCommentary,
	})
	s.Protagonist.PoetryCount++

	s.record(ChronicleCompletion,
		fmt.Sprintf("使用\"灵韵补全\"功能创作诗词。\n\n我写道：%s\n%s\n\n%s", completion.PlayerLines, completion.AILines, completion.PoetryCommentary),
		s.Protagonist.Name)
}

// Apply dispatches a decoded payload to the matching Apply method.
func (s *Session) Apply(payload any) error {
	switch p := payload.(type) {
	case []Poet:
		s.AddPoets(p)
	case MonthlyEvents:
		s.ApplyEvents(p)
	case PoetryParty:
		s.ApplyParty(p)
	case ExamResult:
		s.ApplyExam(p)
	case PoemCompletion:
		s.ApplyCompletion(p, "")
	default:
		return fmt.Errorf("%w: cannot apply %T", ErrUnknownKind, payload)
	}
	return nil
}

// AdvanceMonth moves the calendar forward one month. The season follows the
// month, the year title rotates at the start of every thirtieth year, the
// weather and poetry party are drawn from r, and exams are held in the
// third and ninth months. A nil r uses the global source.
func (s *Session) AdvanceMonth(r *rand.Rand) {
	w := &s.World

	w.Month++
	if w.Month > 12 {
		w.Month = 1
		w.Year++
	}

	if w.Year%yearTitleEraLength == 1 && w.Month == 1 {
		next := (slices.Index(yearTitles, w.YearTitle) + 1) % len(yearTitles)
		w.YearTitle = yearTitles[next]
	}

	w.Season = seasonOf(w.Month)

	intN, float64N := rand.IntN, rand.Float64
	if r != nil {
		intN, float64N = r.IntN, r.Float64
	}
	w.Weather = weathers[intN(len(weathers))]
	w.IsPoetryPartyMonth = float64N() < poetryPartyChance
	w.IsExamMonth = w.Month == 3 || w.Month == 9
}

func seasonOf(month int) string {
	switch month {
	case 3, 4, 5:
		return "春"
	case 6, 7, 8:
		return "夏"
	case 9, 10, 11:
		return "秋"
	default:
		return "冬"
	}
}

func (s *Session) character(name string) *Character {
	if name == "" {
		return nil
	}
	for i := range s.Characters {
		if s.Characters[i].Name == name {
			return &s.Characters[i]
		}
	}
	return nil
}

func (s *Session) addTalent(delta int) {
	st := &s.Protagonist.Stats
	st.LiteraryTalent = clamp(st.LiteraryTalent+delta, minTalent, maxTalent)
}

func (s *Session) addReputation(delta int) {
	st := &s.Protagonist.Stats
	st.Reputation = clamp(st.Reputation+delta, minReputation, maxReputation)
}

func talentOf(c Character) int {
	if c.LiteraryTalent == 0 {
		return defaultPoetTalent
	}
	return c.LiteraryTalent
}

package game

// Poet is one generated literatus of the roster.
type Poet struct {
	Name               string `json:"name"`
	CourtesyName       string `json:"courtesyName,omitempty"`
	Gender             string `json:"gender,omitempty"`
	Age                int    `json:"age,omitempty"`
	Identity           string `json:"identity,omitempty"`
	SocialClass        string `json:"socialClass,omitempty"`
	PoetryStyle        string `json:"poetryStyle,omitempty"`
	Specialty          string `json:"specialty,omitempty"`
	SignatureWork      string `json:"signatureWork,omitempty"`
	SignatureWorkTitle string `json:"signatureWorkTitle,omitempty"`
	Reputation         int    `json:"reputation"`
	Charm              int    `json:"charm"`
	LiteraryTalent     int    `json:"literaryTalent"`
	SocialInfluence    int    `json:"socialInfluence"`
	Introduction       string `json:"introduction,omitempty"`
}

// Event is a monthly poetic happening with the poem it produced.
type Event struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	PoemType             string `json:"poemType"`
	PoemTitle            string `json:"poemTitle"`
	PoemContent          string `json:"poemContent"`
	PoetryCommentary     string `json:"poetryCommentary"`
	LiteraryTalentChange int    `json:"literaryTalentChange"`
	ReputationChange     int    `json:"reputationChange"`
}

// MonthlyEvents is the reply to a monthly scene prompt.
type MonthlyEvents struct {
	Events []Event `json:"events"`
}

// PartyEntry is one participant's poem at a poetry party.
type PartyEntry struct {
	Name             string `json:"name"`
	PoemType         string `json:"poemType"`
	PoemTitle        string `json:"poemTitle"`
	PoemContent      string `json:"poemContent"`
	PoetryCommentary string `json:"poetryCommentary"`
	Ranking          int    `json:"ranking"`
	ReputationChange int    `json:"reputationChange"`
}

// PoetryParty is the reply to a poetry party prompt.
type PoetryParty struct {
	PartyTitle       string       `json:"partyTitle"`
	PartyDescription string       `json:"partyDescription"`
	Champion         string       `json:"champion"`
	ChampionReason   string       `json:"championReason"`
	Participants     []PartyEntry `json:"participants"`
}

// ExamResult is the reply to an imperial examination prompt.
type ExamResult struct {
	ExamTitle            string `json:"examTitle"`
	ExamQuestion         string `json:"examQuestion"`
	RequiredFormat       string `json:"requiredFormat"`
	TimeLimit            string `json:"timeLimit"`
	ExaminerComment      string `json:"examinerComment"`
	Grade                string `json:"grade"`
	GradeReason          string `json:"gradeReason"`
	PoemType             string `json:"poemType"`
	PoemTitle            string `json:"poemTitle"`
	PoemContent          string `json:"poemContent"`
	LiteraryTalentChange int    `json:"literaryTalentChange"`
	ReputationChange     int    `json:"reputationChange"`
	CareerAdvancement    bool   `json:"careerAdvancement"`
	NewTitle             string `json:"newTitle"`
}

// PoemCompletion is the reply to a line completion prompt.
type PoemCompletion struct {
	CompletedPoem        string `json:"completedPoem"`
	PlayerLines          string `json:"playerLines"`
	AILines              string `json:"aiLines"`
	PoetryCommentary     string `json:"poetryCommentary"`
	LiteraryTalentChange int    `json:"literaryTalentChange"`
}

// Exam grades, best first.
const (
	GradeFirst  = "一甲"
	GradeSecond = "二甲"
	GradeThird  = "三甲"
	GradeFailed = "落榜"
)

// careerLevel maps an exam grade to the rank granted with a new title.
func careerLevel(grade string) int {
	switch grade {
	case GradeFirst:
		return 5
	case GradeSecond:
		return 4
	default:
		return 3
	}
}

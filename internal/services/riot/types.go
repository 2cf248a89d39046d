// Package riot provides types for Riot API responses.
package riot

// LeagueEntry is one player listed by league-v4. Older responses carry only
// the encrypted summoner ID.
type LeagueEntry struct {
	PUUID        string `json:"puuid"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
}

// PlayerID returns the PUUID when present, the summoner ID otherwise.
func (e LeagueEntry) PlayerID() string {
	if e.PUUID != "" {
		return e.PUUID
	}
	return e.SummonerID
}

// SummonerResponse represents the response from summoner-v4.
type SummonerResponse struct {
	ID    string `json:"id"`
	PUUID string `json:"puuid"`
}

// MatchInfo represents the info section of a match response.
type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int64         `json:"gameDuration"`
	GameMode     string        `json:"gameMode"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// MatchResponse represents the full match response from Riot API.
type MatchResponse struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info MatchInfo `json:"info"`
}

// Participant represents a player in a match.
type Participant struct {
	PUUID         string `json:"puuid"`
	ParticipantID int    `json:"participantId"`
	ChampionName  string `json:"championName"`
	TeamID        int    `json:"teamId"`
	TeamPosition  string `json:"teamPosition"`
	Lane          string `json:"lane"`
	Role          string `json:"role"`
	Win           bool   `json:"win"`

	// Inventory at game end
	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`
}

// Items returns the seven end-of-game inventory slots.
func (p Participant) Items() []int {
	return []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}

// Position returns teamPosition, falling back to the legacy lane field when
// Riot left it empty or marked it invalid.
func (p Participant) Position() string {
	if p.TeamPosition == "" || p.TeamPosition == "Invalid" {
		return p.Lane
	}
	return p.TeamPosition
}

// TimelineResponse represents the timeline response from Riot API.
type TimelineResponse struct {
	Info TimelineInfo `json:"info"`
}

// TimelineInfo represents the info section of a timeline response.
type TimelineInfo struct {
	Frames []TimelineFrame `json:"frames"`
}

// TimelineFrame represents a frame in the timeline.
type TimelineFrame struct {
	Timestamp         int64                       `json:"timestamp"`
	Events            []TimelineEvent             `json:"events"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
}

// TimelineEvent represents an event in the timeline. Only the item fields are
// decoded.
type TimelineEvent struct {
	Type          string `json:"type"`
	Timestamp     int64  `json:"timestamp"`
	ParticipantID int    `json:"participantId"`
	ItemID        int    `json:"itemId"`
	AfterID       int    `json:"afterId"`
	BeforeID      int    `json:"beforeId"`
}

// ParticipantFrame represents a participant's state at a frame.
type ParticipantFrame struct {
	ParticipantID int `json:"participantId"`
	TotalGold     int `json:"totalGold"`
}

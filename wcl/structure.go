package wcl

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////////////////////////
// query variables

type ReportFightsVars struct {
	Code        string
	EncounterID int
	Difficulty  int
}

type ReportRosterVars struct {
	Code     string
	FightIDs []int
}

type ReportEventsVars struct {
	Code       string
	FightIDs   []int
	DataType   string
	Hostility  string
	AbilityID  int
	StartTime  int64
	EndTime    int64
	WipeCutoff int
}

type ReportTableVars struct {
	Code        string
	FightIDs    []int
	DataType    string
	EncounterID int
	Difficulty  int
	KillType    string
	AbilityID   int
	TargetID    int
	WipeCutoff  int
	Filter      string
}

type ReportActorsVars struct {
	Code string
}

////////////////////////////////////////////////////////////////////////////////////////////////////
// responses

type ReportFightsResponse struct {
	Data struct {
		ReportData struct {
			Report *struct {
				StartTime float64       `json:"startTime"` // ms unix epoch
				Fights    []ReportFight `json:"fights"`
			} `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
}

// ReportFight times are ms offsets from the report epoch.
type ReportFight struct {
	ID        int   `json:"id"`
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
}

type ReportRosterResponse struct {
	Data struct {
		ReportData struct {
			Report *struct {
				PlayerDetails struct {
					Data struct {
						PlayerDetails struct {
							Tanks   []PlayerDetail `json:"tanks"`
							Healers []PlayerDetail `json:"healers"`
							Dps     []PlayerDetail `json:"dps"`
						} `json:"playerDetails"`
					} `json:"data"`
				} `json:"playerDetails"`
			} `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
}

type PlayerDetail struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"` // class name
	Server string `json:"server"`
}

type ReportEventsResponse struct {
	Data struct {
		ReportData struct {
			Report *struct {
				Events struct {
					Data              []Event `json:"data"`
					NextPageTimestamp *int64  `json:"nextPageTimestamp"`
				} `json:"events"`
			} `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
}

// Event is one combat-log line. Only the fields the evaluators read are
// decoded; the rest of the payload is dropped.
type Event struct {
	Timestamp     int64  `json:"timestamp"` // ms offset from the report epoch
	Type          string `json:"type"`
	SourceID      int    `json:"sourceID"`
	TargetID      int    `json:"targetID"`
	Fight         int    `json:"fight"`
	AbilityGameID int    `json:"abilityGameID"`
	Amount        int64  `json:"amount"`
}

type ReportTableResponse struct {
	Data struct {
		ReportData struct {
			Report *struct {
				Table TableBlob `json:"table"`
			} `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
}

// TableBlob carries the table payload undecoded. Its inner structure depends
// on the requested dataType, so the consumer picks the decode shape.
type TableBlob struct {
	Data json.RawMessage `json:"data"`
}

type ReportActorsResponse struct {
	Data struct {
		ReportData struct {
			Report *struct {
				MasterData struct {
					Actors []ReportActor `json:"actors"`
				} `json:"masterData"`
			} `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
}

// ReportActor is one NPC instance. GameID is the template id shared by every
// instance of the same creature; ID is unique within the report.
type ReportActor struct {
	ID     int    `json:"id"`
	GameID int    `json:"gameID"`
	Name   string `json:"name"`
}

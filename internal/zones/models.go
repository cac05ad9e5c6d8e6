package zones

// Имена стандартных моделей зон
const (
	FiveZoneModelName  = "5-Zone Model"
	ThreeZoneModelName = "3-Zone Model"
	CogganModelName    = "Coggan Model"
	PowerModelName     = "Coggan Power Model"
)

// TrainingZone — одна пульсовая зона: полуинтервал [MinPercent, MaxPercent)
// от максимального пульса и соответствующие абсолютные границы в bpm.
type TrainingZone struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MinPercent  int    `json:"min_percent"`
	MaxPercent  int    `json:"max_percent"`
	MinHR       int    `json:"min_hr"`
	MaxHR       int    `json:"max_hr"`
}

// ZoneModel — именованный набор смежных пульсовых зон
type ZoneModel struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Zones       []TrainingZone `json:"zones"`
}

// PowerZone — одна силовая зона: проценты от FTP и абсолютные ватты
type PowerZone struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MinPercent  int    `json:"min_percent"`
	MaxPercent  int    `json:"max_percent"`
	MinWatts    int    `json:"min_watts"`
	MaxWatts    int    `json:"max_watts"`
}

// PowerZoneModel — набор силовых зон, привязанный к FTP
type PowerZoneModel struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	FTP         int         `json:"ftp"`
	Zones       []PowerZone `json:"zones"`
}

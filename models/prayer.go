package models

// Prayer is one of the five fixed daily prayer slots. The catalog is seeded
// once at startup and treated as immutable afterwards.
type Prayer struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NameEn        string `gorm:"size:50;not null" json:"nameEn"`
	NameAr        string `gorm:"size:50;not null" json:"nameAr"`
	ScheduledTime string `gorm:"size:5;not null" json:"scheduledTime"`
}

// DefaultPrayers returns the seed rows for the prayer catalog.
func DefaultPrayers() []Prayer {
	return []Prayer{
		{NameEn: "Fajr", NameAr: "الفجر", ScheduledTime: "05:30"},
		{NameEn: "Dhuhr", NameAr: "الظهر", ScheduledTime: "12:45"},
		{NameEn: "Asr", NameAr: "العصر", ScheduledTime: "16:15"},
		{NameEn: "Maghrib", NameAr: "المغرب", ScheduledTime: "18:30"},
		{NameEn: "Isha", NameAr: "العشاء", ScheduledTime: "20:00"},
	}
}

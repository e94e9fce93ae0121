package verify

import "github.com/mahendramedapati27/unimatch/internal/domain"

// span is an inclusive [min, max] USD range.
type span struct{ min, max float64 }

// tuitionRanges holds typical annual tuition per country and level.
var tuitionRanges = map[string]map[domain.Level]span{
	"usa": {
		domain.LevelBachelors: {20000, 70000},
		domain.LevelMasters:   {25000, 65000},
		domain.LevelPhD:       {0, 40000},
	},
	"uk": {
		domain.LevelBachelors: {15000, 40000},
		domain.LevelMasters:   {15000, 45000},
		domain.LevelPhD:       {15000, 35000},
	},
	"canada": {
		domain.LevelBachelors: {12000, 35000},
		domain.LevelMasters:   {12000, 40000},
		domain.LevelPhD:       {5000, 25000},
	},
	"germany": {
		domain.LevelBachelors: {0, 5000},
		domain.LevelMasters:   {0, 5000},
		domain.LevelPhD:       {0, 3000},
	},
	"australia": {
		domain.LevelBachelors: {20000, 45000},
		domain.LevelMasters:   {22000, 50000},
		domain.LevelPhD:       {18000, 42000},
	},
	"netherlands": {
		domain.LevelBachelors: {6000, 15000},
		domain.LevelMasters:   {8000, 20000},
		domain.LevelPhD:       {0, 5000},
	},
	"sweden": {
		domain.LevelBachelors: {0, 18000},
		domain.LevelMasters:   {0, 20000},
		domain.LevelPhD:       {0, 0},
	},
}

// livingRanges holds typical monthly living cost per country.
var livingRanges = map[string]span{
	"usa":         {1200, 3000},
	"uk":          {1000, 2500},
	"canada":      {900, 2000},
	"germany":     {800, 1500},
	"australia":   {1200, 2500},
	"netherlands": {900, 1800},
	"sweden":      {900, 1600},
}

var commonwealthOrigins = map[string]struct{}{
	"india": {}, "pakistan": {}, "bangladesh": {}, "nigeria": {},
	"ghana": {}, "kenya": {}, "uganda": {}, "jamaica": {},
}

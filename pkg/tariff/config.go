package tariff

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/levenlabs/go-lflag"
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configured returns the tariffs to use, registering the flags that can
// override the defaults. The returned value is only populated after
// lflag.Configure has been called.
func Configured() *Tariffs {
	t := &Tariffs{}
	path := lflag.String("tariff-config", "", "YAML file overriding the default rates, bracket limits and band hours")

	lflag.Do(func() {
		loaded := Default()
		if *path != "" {
			var err error
			loaded, err = LoadFile(*path)
			if err != nil {
				panic(fmt.Sprintf("failed to load tariff config: %v", err))
			}
		}
		if err := loaded.Validate(); err != nil {
			panic(fmt.Sprintf("tariff config validation failed: %v", err))
		}
		*t = loaded
	})

	return t
}

type standardFile struct {
	BaseCharge    *float64 `yaml:"baseCharge"`
	Tier1         *float64 `yaml:"tier1"`
	Tier2         *float64 `yaml:"tier2"`
	Tier3         *float64 `yaml:"tier3"`
	Tier1LimitKWH *float64 `yaml:"tier1LimitKWH"`
	Tier2LimitKWH *float64 `yaml:"tier2LimitKWH"`
}

type timeOfUseFile struct {
	BaseCharge *float64 `yaml:"baseCharge"`
	Day        *float64 `yaml:"day"`
	Life       *float64 `yaml:"life"`
	Night      *float64 `yaml:"night"`
}

type scheduleFile struct {
	Day   []int `yaml:"day"`
	Life  []int `yaml:"life"`
	Night []int `yaml:"night"`
}

type configFile struct {
	Currency string         `yaml:"currency"`
	Standard *standardFile  `yaml:"standard"`
	Night    *timeOfUseFile `yaml:"night"`
	Day      *timeOfUseFile `yaml:"day"`
	Weekday  *scheduleFile  `yaml:"weekday"`
	Weekend  *scheduleFile  `yaml:"weekend"`
}

// LoadFile reads a YAML tariff file. Anything the file leaves out keeps its
// default value. A schedule that is present replaces the default schedule
// entirely.
func LoadFile(path string) (Tariffs, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Tariffs{}, fmt.Errorf("failed to read tariff config (%s): %w", path, err)
	}
	return Load(bytes.NewReader(b))
}

// Load is LoadFile for an already open reader.
func Load(r io.Reader) (Tariffs, error) {
	var f configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Tariffs{}, fmt.Errorf("failed to decode tariff config: %w", err)
	}

	t := Default()
	if f.Currency != "" {
		t.Currency = f.Currency
	}
	if s := f.Standard; s != nil {
		override(&t.Standard.BaseCharge, s.BaseCharge)
		override(&t.Standard.Tier1, s.Tier1)
		override(&t.Standard.Tier2, s.Tier2)
		override(&t.Standard.Tier3, s.Tier3)
		override(&t.Standard.Tier1LimitKWH, s.Tier1LimitKWH)
		override(&t.Standard.Tier2LimitKWH, s.Tier2LimitKWH)
	}
	overrideTimeOfUse(&t.Night, f.Night)
	overrideTimeOfUse(&t.Day, f.Day)
	if f.Weekday != nil {
		t.Schedules.Weekday = f.Weekday.schedule()
	}
	if f.Weekend != nil {
		t.Schedules.Weekend = f.Weekend.schedule()
	}
	return t, nil
}

func overrideTimeOfUse(p *types.TimeOfUsePlan, f *timeOfUseFile) {
	if f == nil {
		return
	}
	override(&p.BaseCharge, f.BaseCharge)
	override(&p.Day, f.Day)
	override(&p.Life, f.Life)
	override(&p.Night, f.Night)
}

func override(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}

func (s *scheduleFile) schedule() types.BandSchedule {
	return types.BandSchedule{
		Day:   types.HourSet(s.Day),
		Life:  types.HourSet(s.Life),
		Night: types.HourSet(s.Night),
	}
}

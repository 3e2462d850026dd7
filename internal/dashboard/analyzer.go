package dashboard

import (
	"math"
	"sort"
	"time"
)

const (
	// DefaultCalorieTarget and DefaultProteinTarget are the daily bulk
	// targets used when nothing else is configured.
	DefaultCalorieTarget = 2800
	DefaultProteinTarget = 150

	// closeFactor marks a day as "close" when both intakes reach at
	// least this share of their targets.
	closeFactor = 0.85

	// aheadMargin and behindMargin are the pace bands for the bulk
	// projection: progress further than aheadMargin in front of the
	// elapsed time means ahead, further than behindMargin after it
	// means behind.
	aheadMargin  = 0.10
	behindMargin = 0.15

	dayDateLayout = "2006-01-02"
)

// DailyRollup sums all meals of one day. The day key is the exact date
// string of the entries, no timezone normalization.
type DailyRollup struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Label    string  `json:"label"`
}

// ExerciseProgression compares the first and the latest session of one
// exercise, ordered by date string.
type ExerciseProgression struct {
	Name        string        `json:"name"`
	Sessions    int           `json:"sessions"`
	First       TrainingEntry `json:"first"`
	Latest      TrainingEntry `json:"latest"`
	Delta       float64       `json:"delta"`
	Progressing bool          `json:"progressing"`
}

// BulkGoal is the configured bulk window: start and target weight with
// their dates, both dates in YYYY-MM-DD form.
type BulkGoal struct {
	StartDate    string  `json:"startDate"`
	StartWeight  float64 `json:"startWeight"`
	TargetDate   string  `json:"targetDate"`
	TargetWeight float64 `json:"targetWeight"`
}

// BulkStatus reports how the bulk tracks against its goal. ProjectedDate
// is empty when there is not enough data for a projection.
type BulkStatus struct {
	CurrentWeight    float64 `json:"currentWeight"`
	GainedWeight     float64 `json:"gainedWeight"`
	ProgressFraction float64 `json:"progressFraction"`
	ElapsedFraction  float64 `json:"elapsedFraction"`
	Pace             string  `json:"pace"`
	ProjectedDate    string  `json:"projectedDate,omitempty"`
}

// DayCompliance is the verdict for a single day: "hit" when both targets
// are met, "close" when both are at least 85% there, "miss" otherwise.
type DayCompliance struct {
	Date   string `json:"date"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

type WeeklyCompliance struct {
	Days             []DayCompliance `json:"days"`
	Hits             int             `json:"hits"`
	WeekendShortfall bool            `json:"weekendShortfall"`
}

type Analyzer struct {
	calorieTarget float64
	proteinTarget float64
}

func NewAnalyzer(calorieTarget, proteinTarget float64) *Analyzer {
	return &Analyzer{
		calorieTarget: calorieTarget,
		proteinTarget: proteinTarget,
	}
}

// DailyRollups groups meals by their exact date string and sums calories
// and protein per day. Result is sorted ascending by date.
func (a *Analyzer) DailyRollups(meals []MealEntry) []DailyRollup {
	day2rollup := make(map[string]*DailyRollup)
	for _, meal := range meals {
		rollup, ok := day2rollup[meal.Date]
		if !ok {
			rollup = &DailyRollup{
				Date:  meal.Date,
				Label: dayLabel(meal.Date),
			}
			day2rollup[meal.Date] = rollup
		}
		rollup.Calories += meal.Calories
		rollup.Protein += meal.Protein
	}

	rollups := make([]DailyRollup, 0, len(day2rollup))
	for _, rollup := range day2rollup {
		rollups = append(rollups, *rollup)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Date < rollups[j].Date
	})
	return rollups
}

// CalorieHitRate is the share of rolled up days that reached the calorie
// target. Zero days means rate 0.
func (a *Analyzer) CalorieHitRate(rollups []DailyRollup) float64 {
	return hitRate(rollups, a.calorieTarget, func(r DailyRollup) float64 {
		return r.Calories
	})
}

// ProteinHitRate is the share of rolled up days that reached the protein
// target.
func (a *Analyzer) ProteinHitRate(rollups []DailyRollup) float64 {
	return hitRate(rollups, a.proteinTarget, func(r DailyRollup) float64 {
		return r.Protein
	})
}

func hitRate(rollups []DailyRollup, target float64, metric func(DailyRollup) float64) float64 {
	if len(rollups) == 0 {
		return 0
	}
	hits := 0
	for _, rollup := range rollups {
		if metric(rollup) >= target {
			hits++
		}
	}
	return float64(hits) / float64(len(rollups))
}

// Progressions builds one progression per distinct exercise name, in
// first occurrence order. Sessions of one exercise are sorted by date
// with a stable sort, so same day sets keep their logged order.
func (a *Analyzer) Progressions(training []TrainingEntry) []ExerciseProgression {
	name2entries := make(map[string][]TrainingEntry)
	var names []string
	for _, entry := range training {
		if _, ok := name2entries[entry.Exercise]; !ok {
			names = append(names, entry.Exercise)
		}
		name2entries[entry.Exercise] = append(name2entries[entry.Exercise], entry)
	}

	progressions := make([]ExerciseProgression, 0, len(names))
	for _, name := range names {
		entries := name2entries[name]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date < entries[j].Date
		})

		first, latest := entries[0], entries[len(entries)-1]
		delta := latest.Weight - first.Weight
		progressions = append(progressions, ExerciseProgression{
			Name:        name,
			Sessions:    len(entries),
			First:       first,
			Latest:      latest,
			Delta:       delta,
			Progressing: delta >= 0,
		})
	}
	return progressions
}

// BulkProjection rates the bulk progress against the goal window as of
// now. Returns nil when there are no samples or the goal window is not
// usable. The weight gain projection needs at least 3 samples and a
// positive net gain, otherwise ProjectedDate stays empty.
func (a *Analyzer) BulkProjection(goal BulkGoal, bodyComp []BodyCompEntry, now time.Time) *BulkStatus {
	if len(bodyComp) == 0 {
		return nil
	}

	startDate, err := time.Parse(dayDateLayout, goal.StartDate)
	if err != nil {
		return nil
	}
	targetDate, err := time.Parse(dayDateLayout, goal.TargetDate)
	if err != nil {
		return nil
	}
	totalDays := targetDate.Sub(startDate).Hours() / 24
	if totalDays <= 0 {
		return nil
	}
	daysPassed := now.Sub(startDate).Hours() / 24

	samples := make([]BodyCompEntry, len(bodyComp))
	copy(samples, bodyComp)
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date < samples[j].Date
	})
	current := samples[len(samples)-1].Weight
	gained := current - goal.StartWeight

	progress := 1.0
	if goal.TargetWeight != goal.StartWeight {
		progress = gained / (goal.TargetWeight - goal.StartWeight)
	}
	progress = clamp01(progress)
	elapsed := daysPassed / totalDays

	pace := "on track"
	switch {
	case progress-elapsed > aheadMargin:
		pace = "ahead"
	case elapsed-progress > behindMargin:
		pace = "behind"
	}

	status := &BulkStatus{
		CurrentWeight:    current,
		GainedWeight:     gained,
		ProgressFraction: progress,
		ElapsedFraction:  elapsed,
		Pace:             pace,
	}

	if len(samples) >= 3 && gained > 0 && daysPassed > 0 {
		rate := gained / daysPassed
		daysRemaining := (goal.TargetWeight - current) / rate
		projected := now.Add(time.Duration(daysRemaining * 24 * float64(time.Hour)))
		status.ProjectedDate = projected.Format(dayDateLayout)
	}

	return status
}

// WeeklyCompliance rates the last 7 rolled up days against both targets
// and flags a weekend protein shortfall when the weekend average drops
// under 85% of the weekday one.
func (a *Analyzer) WeeklyCompliance(rollups []DailyRollup) WeeklyCompliance {
	lastWeek := rollups
	if len(lastWeek) > 7 {
		lastWeek = lastWeek[len(lastWeek)-7:]
	}

	compliance := WeeklyCompliance{
		Days: make([]DayCompliance, 0, len(lastWeek)),
	}

	var weekdayProtein, weekendProtein []float64
	for _, rollup := range lastWeek {
		status := "miss"
		switch {
		case rollup.Calories >= a.calorieTarget && rollup.Protein >= a.proteinTarget:
			status = "hit"
			compliance.Hits++
		case rollup.Calories >= a.calorieTarget*closeFactor && rollup.Protein >= a.proteinTarget*closeFactor:
			status = "close"
		}
		compliance.Days = append(compliance.Days, DayCompliance{
			Date:   rollup.Date,
			Label:  rollup.Label,
			Status: status,
		})

		if isWeekend(rollup.Date) {
			weekendProtein = append(weekendProtein, rollup.Protein)
		} else {
			weekdayProtein = append(weekdayProtein, rollup.Protein)
		}
	}

	if len(weekendProtein) > 0 && len(weekdayProtein) > 0 {
		compliance.WeekendShortfall = avg(weekendProtein) < avg(weekdayProtein)*closeFactor
	}
	return compliance
}

// dayLabel renders a short chart label. The date is parsed at fixed noon
// so day boundaries cannot shift with the local timezone. Unparseable
// dates fall back to the raw string.
func dayLabel(date string) string {
	if len(date) < len(dayDateLayout) {
		return date
	}
	t, err := time.ParseInLocation(
		"2006-01-02T15:04:05",
		date[:len(dayDateLayout)]+"T12:00:00",
		time.Local,
	)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

func isWeekend(date string) bool {
	if len(date) < len(dayDateLayout) {
		return false
	}
	t, err := time.Parse(dayDateLayout, date[:len(dayDateLayout)])
	if err != nil {
		return false
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

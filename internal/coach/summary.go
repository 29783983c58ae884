package coach

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/talent-tracker/internal/models"
)

const (
	topSkillsLimit       = 5
	recentCompaniesLimit = 3
)

// Snapshot is the slice of user data the summary is derived from.
// Jobs and Interviews are expected most recent first.
type Snapshot struct {
	Skills     []*models.Skill
	Jobs       []*models.Job
	Interviews []*models.Interview
}

// Summarize renders the context digest appended to the coaching instruction.
// An empty snapshot yields an empty string.
func Summarize(s Snapshot) string {
	var b strings.Builder
	writeSkills(&b, s.Skills)
	writeJobs(&b, s.Jobs)
	writeInterviews(&b, s.Interviews)
	return b.String()
}

func writeSkills(b *strings.Builder, skills []*models.Skill) {
	if len(skills) == 0 {
		return
	}

	b.WriteString("\n\nUser's Skills Profile:")
	b.WriteString("\nTop Skills: ")
	b.WriteString(joinMapped(topSkills(skills), formatSkill))

	var gaps []string
	for _, sk := range skills {
		if sk.HasGap() {
			gaps = append(gaps, fmt.Sprintf("%s (%d→%d)", sk.Name, *sk.Level, *sk.TargetLevel))
		}
	}
	if len(gaps) > 0 {
		b.WriteString("\nSkill Gaps: ")
		b.WriteString(strings.Join(gaps, ", "))
	}

	categories := distinct(skills, func(sk *models.Skill) string { return sk.Category })
	if len(categories) > 1 {
		b.WriteString("\nSkill Categories: ")
		b.WriteString(strings.Join(categories, ", "))
	}
}

// topSkills orders by level descending without touching the caller's slice.
// Unrated skills sort last; equal levels keep their fetched order.
func topSkills(skills []*models.Skill) []*models.Skill {
	sorted := make([]*models.Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Level, sorted[j].Level
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	if len(sorted) > topSkillsLimit {
		sorted = sorted[:topSkillsLimit]
	}
	return sorted
}

func formatSkill(sk *models.Skill) string {
	level := "unrated"
	if sk.Level != nil {
		level = fmt.Sprintf("%d/%d", *sk.Level, models.MaxLevel)
	}
	if sk.TargetLevel != nil {
		return fmt.Sprintf("%s (%s, target: %d)", sk.Name, level, *sk.TargetLevel)
	}
	return fmt.Sprintf("%s (%s)", sk.Name, level)
}

func writeJobs(b *strings.Builder, jobs []*models.Job) {
	if len(jobs) == 0 {
		return
	}

	statuses := distinct(jobs, func(j *models.Job) string { return string(j.Status) })
	counts := make(map[string]int, len(statuses))
	for _, j := range jobs {
		counts[string(j.Status)]++
	}
	histogram := make([]string, len(statuses))
	for i, status := range statuses {
		histogram[i] = fmt.Sprintf("%s: %d", status, counts[status])
	}

	recent := jobs
	if len(recent) > recentCompaniesLimit {
		recent = recent[:recentCompaniesLimit]
	}

	fmt.Fprintf(b, "\n\nJob Search Activity:\nRecent Applications: %d total", len(jobs))
	b.WriteString("\nStatus Breakdown: ")
	b.WriteString(strings.Join(histogram, ", "))
	b.WriteString("\nRecent Companies: ")
	b.WriteString(joinMapped(recent, func(j *models.Job) string { return j.Company }))

	if pref := mostCommonRemoteType(jobs); pref != "" {
		b.WriteString("\nWork Preference: ")
		b.WriteString(pref)
	}
}

// mostCommonRemoteType returns the most frequent non-empty remote_type.
// Ties go to the value that appears first in jobs.
func mostCommonRemoteType(jobs []*models.Job) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, j := range jobs {
		if j.RemoteType == "" {
			continue
		}
		counts[j.RemoteType]++
	}
	for _, value := range distinct(jobs, func(j *models.Job) string { return j.RemoteType }) {
		if counts[value] > bestCount {
			best, bestCount = value, counts[value]
		}
	}
	return best
}

func writeInterviews(b *strings.Builder, interviews []*models.Interview) {
	if len(interviews) == 0 {
		return
	}

	fmt.Fprintf(b, "\n\nInterview History:\nRecent Interviews: %d", len(interviews))

	rated, total, completed := 0, 0, 0
	for _, iv := range interviews {
		if iv.Rating != nil {
			rated++
			total += *iv.Rating
		}
		if iv.Status == models.InterviewCompleted {
			completed++
		}
	}
	if rated > 0 {
		fmt.Fprintf(b, "\nAverage Rating: %.1f/%d", float64(total)/float64(rated), models.MaxLevel)
	}
	if completed > 0 {
		fmt.Fprintf(b, "\nCompleted: %d", completed)
	}
}

// distinct returns the non-empty keys of items in first-seen order
func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func joinMapped[T any](items []T, f func(T) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = f(item)
	}
	return strings.Join(parts, ", ")
}

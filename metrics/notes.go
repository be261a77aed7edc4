package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

var notesEvents = []string{
	"Note_Created",
	"Note_Viewed",
	"Note_Saved",
	"Note_Deleted",
	"Note_Shared",
	"Note_Published",
	"Note_Uploaded_To_Documents",
	"Note_Writing_Tool_Used",
}

// NotesMetrics is the notes feature view: lifecycle counts with trends, the
// Created -> Saved -> Published -> Shared funnel (raw event counts), daily
// activity and the save-trigger / writing-tool distributions.
type NotesMetrics struct {
	TotalNotesCreated       int                    `json:"totalNotesCreated"`
	TotalNotesViewed        int                    `json:"totalNotesViewed"`
	TotalNotesSaved         int                    `json:"totalNotesSaved"`
	TotalNotesDeleted       int                    `json:"totalNotesDeleted"`
	TotalPublished          int                    `json:"totalPublished"`
	TotalShared             int                    `json:"totalShared"`
	TotalDocumentUploads    int                    `json:"totalDocumentUploads"`
	UniqueNoteUsers         int                    `json:"uniqueNoteUsers"`
	TotalWritingToolUses    int                    `json:"totalWritingToolUses"`
	CreatedTrend            *float64               `json:"createdTrend"`
	ViewedTrend             *float64               `json:"viewedTrend"`
	SavedTrend              *float64               `json:"savedTrend"`
	PublishedTrend          *float64               `json:"publishedTrend"`
	SharedTrend             *float64               `json:"sharedTrend"`
	WritingToolTrend        *float64               `json:"writingToolTrend"`
	NotesFunnel             []analytics.FunnelStep `json:"notesFunnel"`
	DailyData               []NotesDay             `json:"dailyData"`
	SaveTriggerDistribution []NameValue            `json:"saveTriggerDistribution"`
	WritingToolDistribution []NameValue            `json:"writingToolDistribution"`
	FeatureAdoption         []NameValue            `json:"featureAdoption"`
	RetentionRate           float64                `json:"retentionRate"`
	DocumentUploadRate      float64                `json:"documentUploadRate"`
	Meta
}

type NotesDay struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
	Viewed  int    `json:"viewed"`
	Saved   int    `json:"saved"`
}

// NameValue is the generic pie-chart bucket several views share.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func nameValues(buckets []analytics.NameCount) []NameValue {
	out := make([]NameValue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, NameValue{Name: b.Name, Value: b.Count})
	}
	return out
}

// BuildNotes assembles the notes view.
func BuildNotes(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) NotesMetrics {
	notes := analytics.FilterByName(events, notesEvents...)
	prev := analytics.FilterByName(previous, notesEvents...)

	created := analytics.CountByName(notes, "Note_Created")
	viewed := analytics.CountByName(notes, "Note_Viewed")
	saved := analytics.CountByName(notes, "Note_Saved")
	deleted := analytics.CountByName(notes, "Note_Deleted")
	published := analytics.CountByName(notes, "Note_Published")
	shared := analytics.CountByName(notes, "Note_Shared")
	uploads := analytics.CountByName(notes, "Note_Uploaded_To_Documents")
	toolUses := analytics.CountByName(notes, "Note_Writing_Tool_Used")

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Created", Count: created},
		{Name: "Saved", Count: saved},
		{Name: "Published", Count: published},
		{Name: "Shared", Count: shared},
	})

	createdByDay := analytics.CountByDay(notes, "Note_Created")
	viewedByDay := analytics.CountByDay(notes, "Note_Viewed")
	savedByDay := analytics.CountByDay(notes, "Note_Saved")

	days := analytics.EnumerateDays(r)
	daily := make([]NotesDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, NotesDay{
			Date:    day,
			Created: createdByDay[day],
			Viewed:  viewedByDay[day],
			Saved:   savedByDay[day],
		})
	}

	saves := analytics.FilterByName(notes, "Note_Saved")
	tools := analytics.FilterByName(notes, "Note_Writing_Tool_Used")

	retentionRate := 0.0
	uploadRate := 0.0
	if created > 0 {
		retentionRate = 100 * float64(created-deleted) / float64(created)
		uploadRate = 100 * float64(uploads) / float64(created)
	}

	return NotesMetrics{
		TotalNotesCreated:    created,
		TotalNotesViewed:     viewed,
		TotalNotesSaved:      saved,
		TotalNotesDeleted:    deleted,
		TotalPublished:       published,
		TotalShared:          shared,
		TotalDocumentUploads: uploads,
		UniqueNoteUsers:      len(analytics.UniqueUsers(notes)),
		TotalWritingToolUses: toolUses,
		CreatedTrend:         analytics.TrendCount(created, analytics.CountByName(prev, "Note_Created")),
		ViewedTrend:          analytics.TrendCount(viewed, analytics.CountByName(prev, "Note_Viewed")),
		SavedTrend:           analytics.TrendCount(saved, analytics.CountByName(prev, "Note_Saved")),
		PublishedTrend:       analytics.TrendCount(published, analytics.CountByName(prev, "Note_Published")),
		SharedTrend:          analytics.TrendCount(shared, analytics.CountByName(prev, "Note_Shared")),
		WritingToolTrend:     analytics.TrendCount(toolUses, analytics.CountByName(prev, "Note_Writing_Tool_Used")),
		NotesFunnel:          funnel,
		DailyData:            daily,
		SaveTriggerDistribution: nameValues(analytics.SortedDistribution(analytics.PropertyDistribution(saves, "trigger"))),
		WritingToolDistribution: nameValues(analytics.SortedDistribution(analytics.PropertyDistribution(tools, "tool_type"))),
		FeatureAdoption: []NameValue{
			{Name: "Published", Value: published},
			{Name: "Shared", Value: shared},
			{Name: "Uploaded to Docs", Value: uploads},
		},
		RetentionRate:      retentionRate,
		DocumentUploadRate: uploadRate,
		Meta:               NewMeta(r, platform, ut),
	}
}

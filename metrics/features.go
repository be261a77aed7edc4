package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// featureEvents cover both the pre- and post-refactor client event names, so
// feature usage stays continuous across app versions.
var featureEvents = []string{
	"Tab View",
	"Notes",
	"Documents",
	"Images",
	"Maps",
	"AI Memory",
	"Image Generation",
	"AISelection",
	"Memory Management Viewed",
	"Keyboard Shortcut Used",
	"Tab_Selected",
	"Note_Created",
	"Note_Viewed",
	"Note_Saved",
	"Document_Uploaded",
	"Document_Viewed",
	"Image_Generation_Started",
	"Image_Generation_Completed",
	"AI_Model_Selected",
	"Map_Viewed",
	"Memory_Viewed",
	"Memory_Management_Viewed",
	"Collection_Created",
	"Collection_Viewed",
	"Collection_Updated",
	"Collection_Deleted",
	"Collection_URL_Added",
	"Collection_Chat_Started",
	"Collection_Exported",
	"Image_Attached",
	"Document_Attached",
	"Chart_Viewed",
	"Chat_Saved_As_Note",
	"Image_Generation_Failed",
	"Document_Deleted",
	"Note_Created_From_Template",
	"Conversation_Published",
	"Conversation_Shared",
	"Memory_Toggled",
	"Memory_Added",
	"Memory_Deleted",
	"Feature_Limit_Reached",
	"Guest_Activity",
	"Page_Viewed",
	"Session_Started",
}

type FeaturesMetrics struct {
	FeatureUsage      []FeatureUsage           `json:"featureUsage"`
	FeatureOverTime   []map[string]interface{} `json:"featureOverTime"`
	FeaturesBySegment []SegmentFeatures        `json:"featuresBySegment"`
	Meta
}

type FeatureUsage struct {
	Feature string `json:"feature"`
	Count   int    `json:"count"`
}

type SegmentFeatures struct {
	Segment  string         `json:"segment"`
	Features []FeatureUsage `json:"features"`
}

// BuildFeatures assembles the feature usage view: overall counts, a per-day
// per-feature matrix, and usage split by platform segment.
func BuildFeatures(events []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) FeaturesMetrics {
	feats := analytics.FilterByName(events, featureEvents...)

	usage := make([]FeatureUsage, 0)
	for _, b := range analytics.SortedDistribution(analytics.EventCounts(feats)) {
		usage = append(usage, FeatureUsage{Feature: b.Name, Count: b.Count})
	}

	countsByDay := make(map[string]map[string]int)
	for _, e := range feats {
		day := e.Day()
		if countsByDay[day] == nil {
			countsByDay[day] = make(map[string]int)
		}
		countsByDay[day][e.Name]++
	}
	days := analytics.EnumerateDays(r)
	overTime := make([]map[string]interface{}, 0, len(days))
	for _, day := range days {
		row := map[string]interface{}{"date": day}
		for _, name := range featureEvents {
			row[name] = countsByDay[day][name]
		}
		overTime = append(overTime, row)
	}

	// This view folds visionOS into Unknown; it is not a feature surface of
	// its own yet.
	segmentCounts := make(map[string]map[string]int)
	for _, e := range feats {
		seg := analytics.Segment(e)
		if seg == analytics.PlatformVisionOS {
			seg = "Unknown"
		}
		if segmentCounts[seg] == nil {
			segmentCounts[seg] = make(map[string]int)
		}
		segmentCounts[seg][e.Name]++
	}
	bySegment := make([]SegmentFeatures, 0, 4)
	for _, seg := range []string{analytics.PlatformIOS, analytics.PlatformWeb, analytics.PlatformMacOS, "Unknown"} {
		counts := segmentCounts[seg]
		if len(counts) == 0 {
			continue
		}
		features := make([]FeatureUsage, 0, len(counts))
		for _, b := range analytics.SortedDistribution(counts) {
			features = append(features, FeatureUsage{Feature: b.Name, Count: b.Count})
		}
		bySegment = append(bySegment, SegmentFeatures{Segment: seg, Features: features})
	}

	return FeaturesMetrics{
		FeatureUsage:      usage,
		FeatureOverTime:   overTime,
		FeaturesBySegment: bySegment,
		Meta:              NewMeta(r, platform, ut),
	}
}

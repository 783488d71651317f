// ABOUTME: Human-readable labels and colors for every enum in the networking domain
// ABOUTME: Lookup tables only; callers decide whether to render them plain or as badges
package display

import "github.com/harperreed/bizlink/models"

// Fallbacks for values outside the known set.
const (
	Unknown   = "Unknown"
	Undefined = "Not defined"
	Grey      = "#6c757d"
)

var connectionStatusText = map[models.ConnectionStatus]string{
	models.ConnectionPending:  "Pending",
	models.ConnectionAccepted: "Connected",
	models.ConnectionDeclined: "Declined",
}

var meetingStatusText = map[models.MeetingStatus]string{
	models.MeetingPending:   "Pending",
	models.MeetingAccepted:  "Accepted",
	models.MeetingDeclined:  "Declined",
	models.MeetingCompleted: "Completed",
	models.MeetingCancelled: "Cancelled",
}

var meetingTypeText = map[models.MeetingType]string{
	models.MeetingInPerson: "In person",
	models.MeetingVirtual:  "Virtual",
	models.MeetingPhone:    "Phone",
}

var referralStatusText = map[models.ReferralStatus]string{
	models.ReferralDraft:     "Draft",
	models.ReferralSent:      "Sent",
	models.ReferralReceived:  "Received",
	models.ReferralCompleted: "Completed",
}

var referralTypeText = map[models.ReferralType]string{
	models.ReferralInternal: "Internal",
	models.ReferralExternal: "External",
}

var interestText = map[models.InterestLevel]string{
	models.InterestVeryLow:  "Very low",
	models.InterestLow:      "Low",
	models.InterestMedium:   "Medium",
	models.InterestHigh:     "High",
	models.InterestVeryHigh: "Very high",
}

var interestColor = map[models.InterestLevel]string{
	models.InterestVeryLow:  "#ff4444",
	models.InterestLow:      "#ff8800",
	models.InterestMedium:   "#ffaa00",
	models.InterestHigh:     "#88cc00",
	models.InterestVeryHigh: "#00aa00",
}

var recommendationStatusText = map[models.RecommendationStatus]string{
	models.RecommendationPending:          "Pending",
	models.RecommendationContacted:        "Contacted",
	models.RecommendationMeetingScheduled: "Meeting scheduled",
	models.RecommendationBusinessDone:     "Business done",
	models.RecommendationNotInterested:    "Not interested",
	models.RecommendationNoResponse:       "No response",
}

var recommendationTypeText = map[models.RecommendationType]string{
	models.RecommendationBusinessOpportunity: "Business opportunity",
	models.RecommendationServiceProvider:     "Service provider",
	models.RecommendationPotentialClient:     "Potential client",
	models.RecommendationPartnership:         "Partnership",
	models.RecommendationOther:               "Other",
}

var priorityText = map[models.Priority]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
	models.PriorityUrgent: "Urgent",
}

var priorityColor = map[models.Priority]string{
	models.PriorityLow:    "#28a745",
	models.PriorityMedium: "#ffc107",
	models.PriorityHigh:   "#fd7e14",
	models.PriorityUrgent: "#dc3545",
}

var followUpStatusText = map[models.FollowUpStatus]string{
	models.FollowUpDraft:     "Draft",
	models.FollowUpCompleted: "Completed",
	models.FollowUpPending:   "Follow-up pending",
}

var followUpTypeText = map[models.FollowUpMeetingType]string{
	models.FollowUpOneToOne:      "One to one",
	models.FollowUpGroupMeeting:  "Group meeting",
	models.FollowUpCoffeeChat:    "Coffee chat",
	models.FollowUpBusinessLunch: "Business lunch",
	models.FollowUpOther:         "Other",
}

var outcomeText = map[models.Outcome]string{
	models.OutcomeExcellent: "Excellent",
	models.OutcomeGood:      "Good",
	models.OutcomeAverage:   "Average",
	models.OutcomePoor:      "Poor",
	models.OutcomeNoShow:    "No show",
}

var outcomeColor = map[models.Outcome]string{
	models.OutcomeExcellent: "#28a745",
	models.OutcomeGood:      "#20c997",
	models.OutcomeAverage:   "#ffc107",
	models.OutcomePoor:      "#fd7e14",
	models.OutcomeNoShow:    "#dc3545",
}

// statusColor gives every status-like value a traffic-light color.
var statusColor = map[string]string{
	"pending":           "#ffc107",
	"follow_up_pending": "#ffc107",
	"draft":             "#6c757d",
	"sent":              "#17a2b8",
	"received":          "#17a2b8",
	"contacted":         "#17a2b8",
	"meeting_scheduled": "#17a2b8",
	"accepted":          "#28a745",
	"completed":         "#28a745",
	"business_done":     "#28a745",
	"declined":          "#dc3545",
	"cancelled":         "#dc3545",
	"not_interested":    "#dc3545",
	"no_response":       "#fd7e14",
}

func lookup[K comparable](m map[K]string, k K, fallback string) string {
	if v, ok := m[k]; ok {
		return v
	}
	return fallback
}

func ConnectionStatusText(s models.ConnectionStatus) string {
	return lookup(connectionStatusText, s, Unknown)
}

func MeetingStatusText(s models.MeetingStatus) string {
	return lookup(meetingStatusText, s, Unknown)
}

func MeetingTypeText(t models.MeetingType) string {
	return lookup(meetingTypeText, t, Undefined)
}

func ReferralStatusText(s models.ReferralStatus) string {
	return lookup(referralStatusText, s, Unknown)
}

func ReferralTypeText(t models.ReferralType) string {
	return lookup(referralTypeText, t, Undefined)
}

func InterestLevelText(l models.InterestLevel) string {
	return lookup(interestText, l, Undefined)
}

// InterestLevelColor runs red to green. Unknown levels are light grey.
func InterestLevelColor(l models.InterestLevel) string {
	return lookup(interestColor, l, "#cccccc")
}

func RecommendationStatusText(s models.RecommendationStatus) string {
	return lookup(recommendationStatusText, s, Unknown)
}

func RecommendationTypeText(t models.RecommendationType) string {
	return lookup(recommendationTypeText, t, Undefined)
}

func PriorityText(p models.Priority) string {
	return lookup(priorityText, p, Undefined)
}

func PriorityColor(p models.Priority) string {
	return lookup(priorityColor, p, Grey)
}

func FollowUpStatusText(s models.FollowUpStatus) string {
	return lookup(followUpStatusText, s, Unknown)
}

func FollowUpTypeText(t models.FollowUpMeetingType) string {
	return lookup(followUpTypeText, t, Undefined)
}

func OutcomeText(o models.Outcome) string {
	return lookup(outcomeText, o, Undefined)
}

func OutcomeColor(o models.Outcome) string {
	return lookup(outcomeColor, o, Grey)
}

// StatusColor maps any status string to a color.
func StatusColor(status string) string {
	return lookup(statusColor, status, Grey)
}

// ABOUTME: Terminal dashboard rendering
// ABOUTME: Turns a member's stats into an ASCII overview with bars
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/bizlink/network"
)

func RenderDashboard(name string, stats *network.Stats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  BIZLINK DASHBOARD: %s\n", name))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	m := stats.Meetings
	out.WriteString("MEETINGS\n")
	renderBars(&out, []bar{
		{"awaiting you", m.PendingReceived},
		{"sent", m.PendingSent},
		{"upcoming", m.Upcoming},
		{"completed", m.Completed},
	})
	out.WriteString(fmt.Sprintf("  %d total, %d scheduled this month\n\n", m.Total, m.ScheduledInMonth))

	r := stats.Referrals
	out.WriteString("REFERRALS\n")
	renderBars(&out, []bar{
		{"sent", r.Sent},
		{"received", r.Received},
		{"drafts", r.Drafts},
		{"awaiting receipt", r.AwaitingReceipt},
		{"completed", r.Completed},
	})
	out.WriteString(fmt.Sprintf("  %d high interest\n\n", r.HighInterest))

	rc := stats.Recommendations
	out.WriteString("RECOMMENDATIONS\n")
	renderBars(&out, []bar{
		{"given", rc.Given},
		{"received", rc.Received},
		{"about you", rc.AboutMe},
		{"business done", rc.BusinessDone},
	})
	out.WriteString(fmt.Sprintf("  $%d estimated value\n\n", rc.TotalEstimatedValue/100))

	f := stats.FollowUps
	out.WriteString("FOLLOW-UPS\n")
	out.WriteString(fmt.Sprintf("  %d logged, %d with referrals\n", f.Total, f.WithReferrals))

	if m.PendingReceived > 0 || rc.PendingReceived > 0 || f.PendingFollowUp > 0 {
		out.WriteString("\nNEEDS ATTENTION\n")
		if m.PendingReceived > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d meeting requests to answer\n", m.PendingReceived))
		}
		if rc.PendingReceived > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d recommendations to contact\n", rc.PendingReceived))
		}
		if f.PendingFollowUp > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d follow-ups with open actions\n", f.PendingFollowUp))
		}
	}

	return out.String()
}

type bar struct {
	label string
	count int
}

func renderBars(out *strings.Builder, bars []bar) {
	maxCount := 0
	for _, b := range bars {
		if b.count > maxCount {
			maxCount = b.count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, b := range bars {
		// 0-10 blocks
		length := (b.count * 10) / maxCount
		out.WriteString(fmt.Sprintf("  %-17s %s%s %3d\n",
			b.label, strings.Repeat("█", length), strings.Repeat("░", 10-length), b.count))
	}
}

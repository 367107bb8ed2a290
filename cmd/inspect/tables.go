package main

import (
	"fmt"
	"io"
	"strconv"
	"time"
	"toni/domain"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var (
	heading = color.New(color.FgCyan, color.OpBold)
	success = color.New(color.FgGreen)
	muted   = color.New(color.FgGray)
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func printSessions(w io.Writer, sessions []domain.SessionSummary) {
	fmt.Fprintln(w, heading.Sprintf("%d sessions", len(sessions)))
	table := newTable(w, "Session", "Device", "Messages", "Created", "Updated")
	for _, s := range sessions {
		table.Append([]string{
			s.SessionID,
			orDash(s.DeviceIP),
			strconv.Itoa(s.MessageCount),
			s.CreatedAt.Local().Format(timeLayout),
			s.UpdatedAt.Local().Format(timeLayout),
		})
	}
	table.Render()
}

func printTranscript(w io.Writer, session domain.Session, messages []domain.Message) {
	fmt.Fprintln(w, heading.Sprint(session.SessionID))
	fmt.Fprintln(w, muted.Sprintf("device %s, created %s", orDash(session.DeviceIP), session.CreatedAt.Local().Format(timeLayout)))
	table := newTable(w, "Time", "From", "Expert", "Camera", "Image", "Content")
	for _, m := range messages {
		camera := "-"
		if m.CameraDirective != nil {
			camera = string(*m.CameraDirective)
		}
		table.Append([]string{
			m.CreatedAt.Local().Format("15:04:05"),
			string(m.Type),
			orDash(m.ExpertName),
			camera,
			bytesOrDash(m.ImageSize),
			m.Content,
		})
	}
	table.Render()
}

func printRequests(w io.Writer, entries []domain.AIRequestLog) {
	fmt.Fprintln(w, heading.Sprintf("%d AI requests", len(entries)))
	table := newTable(w, "Time", "Type", "Expert", "Image", "Latency", "Text")
	for _, e := range entries {
		latency := "-"
		if e.ResponseTimeMs != nil {
			latency = (time.Duration(*e.ResponseTimeMs) * time.Millisecond).String()
		}
		table.Append([]string{
			e.CreatedAt.Local().Format(timeLayout),
			string(e.RequestType),
			orDash(e.ExpertName),
			bytesOrDash(e.ImageSize),
			latency,
			e.UserText,
		})
	}
	table.Render()
}

func printDevices(w io.Writer, devices []domain.Device) {
	fmt.Fprintln(w, heading.Sprintf("%d devices", len(devices)))
	table := newTable(w, "IP", "SSID", "Last seen", "First seen")
	for _, d := range devices {
		table.Append([]string{
			d.DeviceIP,
			orDash(d.DeviceSSID),
			d.LastSeen.Local().Format(timeLayout),
			d.CreatedAt.Local().Format(timeLayout),
		})
	}
	table.Render()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func bytesOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n) + " B"
}

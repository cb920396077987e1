package main

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func printElections(w io.Writer, infos []domain.ElectionInfo) {
	table := newTable(w, "ID", "Title", "Initiator", "Starts", "Ends", "Description")
	for _, info := range infos {
		table.Append([]string{
			strconv.FormatUint(uint64(info.ID), 10),
			info.Title,
			string(info.Initiator),
			formatTime(info.StartDate),
			formatTime(info.EndDate),
			info.Description,
		})
	}
	table.Render()
}

func printCandidates(w io.Writer, candidates []domain.Candidate) {
	table := newTable(w, "Account", "Name", "Slogan", "Goals", "Registered")
	for _, c := range candidates {
		table.Append([]string{
			string(c.AccountID),
			c.Name,
			c.Slogan,
			c.Goals,
			formatTime(c.RegistrationDate),
		})
	}
	table.Render()
}

func printVotes(w io.Writer, votes *domain.ElectionVotes) {
	table := newTable(w, "Candidate", "Voter", "Date", "Donation", "Comment")
	for _, cv := range votes.Votes {
		if len(cv.Votes) == 0 {
			table.Append([]string{string(cv.Candidate.AccountID), "-", "-", "-", "-"})
			continue
		}
		for _, v := range cv.Votes {
			table.Append([]string{
				string(cv.Candidate.AccountID),
				string(v.AccountID),
				formatTime(v.Date),
				strconv.FormatUint(uint64(v.Donation), 10),
				v.Comment,
			})
		}
	}
	table.SetFooter([]string{"", "", "Total", strconv.Itoa(votes.TotalVotes()), ""})
	table.Render()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

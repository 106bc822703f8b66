package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
	"github.com/gmsa-cli/gmsa/internal/gmail/query"
)

func newMessagesCmd() *cobra.Command {
	var (
		account          string
		rawQuery         string
		maxResults       int64
		includeSpamTrash bool

		from          []string
		to            []string
		cc            []string
		subject       []string
		labels        []string
		unread        bool
		starred       bool
		important     bool
		hasAttachment bool
		newerThan     string
		olderThan     string
		before        string
		after         string

		excludeFrom          []string
		excludeTo            []string
		excludeSubject       []string
		excludeLabels        []string
		excludeUnread        bool
		excludeStarred       bool
		excludeSnoozed       bool
		excludeImportant     bool
		excludeHasAttachment bool
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages matching a search query",
		Long: `List messages. The query is given either verbatim with --query, or
assembled from keyword flags (--from, --subject, --unread, ...). All
keyword flags are AND'd together; repeated values of one flag are OR'd.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := rawQuery
			if q == "" {
				opts := query.Options{
					From:                 from,
					To:                   to,
					Cc:                   cc,
					Subject:              subject,
					Unread:               unread,
					Starred:              starred,
					Important:            important,
					HasAttachment:        hasAttachment,
					Before:               before,
					After:                after,
					ExcludeFrom:          excludeFrom,
					ExcludeTo:            excludeTo,
					ExcludeSubject:       excludeSubject,
					ExcludeUnread:        excludeUnread,
					ExcludeStarred:       excludeStarred,
					ExcludeSnoozed:       excludeSnoozed,
					ExcludeImportant:     excludeImportant,
					ExcludeHasAttachment: excludeHasAttachment,
				}
				if len(labels) > 0 {
					opts.Labels = [][]string{labels}
				}
				if len(excludeLabels) > 0 {
					opts.ExcludeLabels = [][]string{excludeLabels}
				}
				if newerThan != "" {
					p, err := parsePeriod(newerThan)
					if err != nil {
						return fmt.Errorf("invalid --newer-than: %w", err)
					}
					opts.NewerThan = p
				}
				if olderThan != "" {
					p, err := parsePeriod(olderThan)
					if err != nil {
						return fmt.Errorf("invalid --older-than: %w", err)
					}
					opts.OlderThan = p
				}
				q = query.Construct(opts)
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			messages, err := client.SearchMessages(cmd.Context(), q, nil, includeSpamTrash, maxResults, gmail.AttachmentsIgnore)
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if len(messages) == 0 {
				fmt.Println("No messages found.")
				return nil
			}

			for _, msg := range messages {
				fmt.Printf("%s  %s\n    From: %s\n    Subject: %s\n",
					msg.ID, msg.Date, msg.From, msg.Subject)
				if msg.Snippet != "" {
					fmt.Printf("    %s\n", msg.Snippet)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")
	cmd.Flags().StringVarP(&rawQuery, "query", "q", "", "Gmail search query (overrides keyword flags)")
	cmd.Flags().Int64VarP(&maxResults, "max-results", "n", 25, "Maximum number of messages to list")
	cmd.Flags().BoolVar(&includeSpamTrash, "include-spam-trash", false, "Include messages from SPAM and TRASH")

	cmd.Flags().StringSliceVar(&from, "from", nil, "Sender address (repeatable, OR'd)")
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address (repeatable, OR'd)")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "Cc address (repeatable, OR'd)")
	cmd.Flags().StringSliceVar(&subject, "subject", nil, "Subject contains (repeatable, OR'd)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Label (repeatable, AND'd)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread messages")
	cmd.Flags().BoolVar(&starred, "starred", false, "Only starred messages")
	cmd.Flags().BoolVar(&important, "important", false, "Only important messages")
	cmd.Flags().BoolVar(&hasAttachment, "has-attachment", false, "Only messages with attachments")
	cmd.Flags().StringVar(&newerThan, "newer-than", "", "Relative age, e.g. 7d, 2m, 1y")
	cmd.Flags().StringVar(&olderThan, "older-than", "", "Relative age, e.g. 7d, 2m, 1y")
	cmd.Flags().StringVar(&before, "before", "", "Only messages before this date (YYYY/MM/DD)")
	cmd.Flags().StringVar(&after, "after", "", "Only messages after this date (YYYY/MM/DD)")

	cmd.Flags().StringSliceVar(&excludeFrom, "exclude-from", nil, "Exclude sender address (repeatable)")
	cmd.Flags().StringSliceVar(&excludeTo, "exclude-to", nil, "Exclude recipient address (repeatable)")
	cmd.Flags().StringSliceVar(&excludeSubject, "exclude-subject", nil, "Exclude subject contains (repeatable)")
	cmd.Flags().StringSliceVar(&excludeLabels, "exclude-label", nil, "Exclude label (repeatable)")
	cmd.Flags().BoolVar(&excludeUnread, "exclude-unread", false, "Exclude unread messages")
	cmd.Flags().BoolVar(&excludeStarred, "exclude-starred", false, "Exclude starred messages")
	cmd.Flags().BoolVar(&excludeSnoozed, "exclude-snoozed", false, "Exclude snoozed messages")
	cmd.Flags().BoolVar(&excludeImportant, "exclude-important", false, "Exclude important messages")
	cmd.Flags().BoolVar(&excludeHasAttachment, "exclude-has-attachment", false, "Exclude messages with attachments")

	return cmd
}

// parsePeriod parses a relative age expression like "7d", "2m" or "1y".
func parsePeriod(s string) (query.Period, error) {
	if len(s) < 2 {
		return query.Period{}, fmt.Errorf("expected <number><d|m|y>, got %q", s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return query.Period{}, fmt.Errorf("expected a positive number in %q", s)
	}

	switch strings.ToLower(s[len(s)-1:]) {
	case "d":
		return query.Period{N: n, Unit: query.Day}, nil
	case "m":
		return query.Period{N: n, Unit: query.Month}, nil
	case "y":
		return query.Period{N: n, Unit: query.Year}, nil
	}
	return query.Period{}, fmt.Errorf("unknown unit in %q, expected d, m or y", s)
}

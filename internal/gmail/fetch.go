package gmail

import (
	"context"

	"golang.org/x/sync/errgroup"
	gmail "google.golang.org/api/gmail/v1"
)

// fetchConcurrency bounds parallel message hydration. Gmail starts
// rate-limiting user requests well before this, so going higher buys nothing.
const fetchConcurrency = 24

// FetchMessages hydrates a page of message references into parsed messages,
// fetching in parallel with bounded concurrency. Result order matches refs.
func (c *Client) FetchMessages(ctx context.Context, refs []*gmail.Message, mode AttachmentMode) ([]*Message, error) {
	messages := make([]*Message, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, err := c.GetParsedMessage(ref.Id, mode)
			if err != nil {
				return err
			}
			messages[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return messages, nil
}

// SearchMessages lists references for a query and hydrates them in one step.
func (c *Client) SearchMessages(ctx context.Context, q string, labelIDs []string, includeSpamTrash bool, maxResults int64, mode AttachmentMode) ([]*Message, error) {
	refs, err := c.ListMessages(q, labelIDs, includeSpamTrash, maxResults)
	if err != nil {
		return nil, err
	}
	return c.FetchMessages(ctx, refs, mode)
}

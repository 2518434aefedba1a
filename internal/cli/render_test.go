package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func plainMedia(cid string) (string, models.MediaKind) {
	return "https://gateway.pinata.cloud/ipfs/" + cid, models.MediaKindNone
}

func kindedMedia(kind models.MediaKind) mediaDescriber {
	return func(cid string) (string, models.MediaKind) {
		return "https://gateway.pinata.cloud/ipfs/" + cid, kind
	}
}

func TestRenderTweetCounters(t *testing.T) {
	tweet := models.Tweet{
		ID:        "12",
		Name:      "alice",
		AuthorID:  "user_1a2b3c4d",
		Author:    "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		Content:   "hello world",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
	}

	cases := []struct {
		name  string
		eng   map[string]models.Engagement
		want  []string
		avoid []string
	}{
		{
			name: "resolved counters with viewer marks",
			eng: map[string]models.Engagement{
				"12": {
					PostID: "12",
					Likes:  3, LikesOK: true, Liked: true, LikedOK: true,
					Comments: 1, CommentsOK: true, CommentedOK: true,
					Reposts: 0, RepostsOK: true, RepostedOK: true,
				},
			},
			want: []string{"likes 3 (you)", "comments 1", "reposts 0"},
		},
		{
			name: "unresolved counters render as question marks",
			eng: map[string]models.Engagement{
				"12": {
					PostID: "12",
					Likes:  3, LikesOK: true, LikedOK: true,
					Comments: 1, CommentsOK: false,
					RepostsOK: false,
				},
			},
			want:  []string{"likes 3", "comments ?", "reposts ?"},
			avoid: []string{"(you)"},
		},
		{
			name: "missing engagement omits the counter line",
			eng:  map[string]models.Engagement{},
			want: []string{"hello world"},
			avoid: []string{
				"likes",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderTweet(&buf, tweet, tc.eng, plainMedia)
			out := buf.String()
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, avoid := range tc.avoid {
				if strings.Contains(out, avoid) {
					t.Errorf("output should not contain %q:\n%s", avoid, out)
				}
			}
		})
	}
}

func TestRenderTweetMediaLink(t *testing.T) {
	tweet := models.Tweet{
		ID:        "7",
		Name:      "bob",
		Content:   "with picture",
		MediaCID:  "QmTestCID",
		Timestamp: time.Now(),
	}

	cases := []struct {
		name  string
		media mediaDescriber
		want  string
	}{
		{
			name:  "probed image is labelled",
			media: kindedMedia(models.MediaKindImage),
			want:  "media (image): https://gateway.pinata.cloud/ipfs/QmTestCID",
		},
		{
			name:  "probed video is labelled",
			media: kindedMedia(models.MediaKindVideo),
			want:  "media (video): https://gateway.pinata.cloud/ipfs/QmTestCID",
		},
		{
			name:  "failed probe falls back to the bare url",
			media: plainMedia,
			want:  "media: https://gateway.pinata.cloud/ipfs/QmTestCID",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderTweet(&buf, tweet, nil, tc.media)
			if !strings.Contains(buf.String(), tc.want) {
				t.Errorf("output missing %q:\n%s", tc.want, buf.String())
			}
		})
	}
}

func TestRenderTweetFallsBackToAddress(t *testing.T) {
	var buf bytes.Buffer
	tweet := models.Tweet{
		ID:        "3",
		Author:    "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		Content:   "anonymous",
		Timestamp: time.Now(),
	}
	renderTweet(&buf, tweet, nil, nil)
	if !strings.Contains(buf.String(), "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045") {
		t.Errorf("expected address fallback for empty name:\n%s", buf.String())
	}
}

func TestRenderComments(t *testing.T) {
	var buf bytes.Buffer
	comments := []models.Comment{
		{
			ID:          "1",
			PostID:      "12",
			Name:        "carol",
			CommenterID: "user_9f8e7d6c",
			Content:     "nice post",
			Timestamp:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			PostID:    "12",
			Author:    "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			Content:   "with media",
			MediaCID:  "QmReplyCID",
			Timestamp: time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC),
		},
	}
	renderComments(&buf, comments, plainMedia)
	out := buf.String()
	for _, want := range []string{
		"carol (user_9f8e7d6c)",
		"nice post",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"media: https://gateway.pinata.cloud/ipfs/QmReplyCID",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFilterByAuthors(t *testing.T) {
	followed := []common.Address{
		common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"),
	}

	tweets := []models.Tweet{
		{ID: "1", Author: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"},
		// Same account, lowercased on the wire
		{ID: "2", Author: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"},
		{ID: "3", Author: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
	}

	got := filterByAuthors(tweets, followed)
	if len(got) != 2 {
		t.Fatalf("expected 2 followed tweets, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("unexpected filtered ids: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilterByAuthorsEmptyList(t *testing.T) {
	tweets := []models.Tweet{{ID: "1", Author: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}}
	if got := filterByAuthors(tweets, nil); got != nil {
		t.Errorf("expected nil for empty follow list, got %v", got)
	}
}

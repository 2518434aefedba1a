package ledger

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func TestPostTweetABIMethods(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(PostTweetABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}

	tests := []struct {
		method string
		inputs int
	}{
		{"postTweet", 4},
		{"getTweetsByUser", 1},
		{"getAllTweets", 0},
		{"getFollowingList", 1},
		{"repostTweet", 4},
		{"getTotalReposts", 2},
		{"hasUserReposted", 2},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, ok := parsed.Methods[tt.method]
			if !ok {
				t.Fatalf("method %s missing", tt.method)
			}
			if len(m.Inputs) != tt.inputs {
				t.Fatalf("method %s has %d inputs, want %d", tt.method, len(m.Inputs), tt.inputs)
			}
		})
	}
}

func TestPostInteractionsABIMethods(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(PostInteractionsABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}

	tests := []struct {
		method string
		inputs int
	}{
		{"likeTweet", 2},
		{"unlikeTweet", 2},
		{"getTotalLikes", 2},
		{"isLiked", 2},
		{"addComment", 7},
		{"getComments", 2},
		{"getTotalComments", 2},
		{"hasUserCommented", 2},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, ok := parsed.Methods[tt.method]
			if !ok {
				t.Fatalf("method %s missing", tt.method)
			}
			if len(m.Inputs) != tt.inputs {
				t.Fatalf("method %s has %d inputs, want %d", tt.method, len(m.Inputs), tt.inputs)
			}
		})
	}
}

func TestTweetTupleRoundTrip(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(PostTweetABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}
	outputs := parsed.Methods["getAllTweets"].Outputs

	want := []rawTweet{{
		Id:        "post-1",
		Name:      "Alice",
		Avatar:    "QmAvatar",
		Author:    common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"),
		AuthorID:  "user_1a2b3c4d",
		Content:   "hello ledger",
		MediaCID:  "QmMedia",
		Timestamp: big.NewInt(1700000000),
	}}

	packed, err := outputs.Pack(want)
	if err != nil {
		t.Fatalf("pack tweets: %v", err)
	}
	out, err := outputs.Unpack(packed)
	if err != nil {
		t.Fatalf("unpack tweets: %v", err)
	}

	got := *abi.ConvertType(out[0], new([]rawTweet)).(*[]rawTweet)
	if len(got) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(got))
	}
	if got[0].Id != want[0].Id || got[0].Author != want[0].Author || got[0].AuthorID != want[0].AuthorID {
		t.Fatalf("tuple layout mismatch: %+v", got[0])
	}

	model := got[0].toModel()
	if model.Author != "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045" {
		t.Fatalf("author address not checksummed: %s", model.Author)
	}
	if model.Timestamp.Unix() != 1700000000 {
		t.Fatalf("timestamp lost: %v", model.Timestamp)
	}
}

func TestCommentTupleRoundTrip(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(PostInteractionsABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}
	outputs := parsed.Methods["getComments"].Outputs

	want := []rawComment{{
		Id:          "comment-1",
		PostId:      "post-1",
		Commenter:   common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Name:        "Bob",
		CommenterID: "user_beefcafe",
		Avatar:      "QmAvatar",
		Content:     "nice post",
		MediaCID:    "",
		Timestamp:   big.NewInt(1700000100),
	}}

	packed, err := outputs.Pack(want)
	if err != nil {
		t.Fatalf("pack comments: %v", err)
	}
	out, err := outputs.Unpack(packed)
	if err != nil {
		t.Fatalf("unpack comments: %v", err)
	}

	got := *abi.ConvertType(out[0], new([]rawComment)).(*[]rawComment)
	if len(got) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(got))
	}

	model := got[0].toModel()
	if model.PostID != "post-1" || model.CommenterID != "user_beefcafe" {
		t.Fatalf("tuple layout mismatch: %+v", model)
	}
}

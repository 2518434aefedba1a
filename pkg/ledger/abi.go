package ledger

// JSON ABI fragments for the two deployed contracts. Only the methods
// the client calls are declared; the on-chain contracts may carry more.

const PostTweetABI = `[
  {
    "type": "function",
    "name": "postTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "authorID", "type": "string"},
      {"name": "content", "type": "string"},
      {"name": "mediaCID", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getTweetsByUser",
    "stateMutability": "view",
    "inputs": [{"name": "user", "type": "address"}],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "id", "type": "string"},
          {"name": "name", "type": "string"},
          {"name": "avatar", "type": "string"},
          {"name": "author", "type": "address"},
          {"name": "authorID", "type": "string"},
          {"name": "content", "type": "string"},
          {"name": "mediaCID", "type": "string"},
          {"name": "timestamp", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getAllTweets",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "id", "type": "string"},
          {"name": "name", "type": "string"},
          {"name": "avatar", "type": "string"},
          {"name": "author", "type": "address"},
          {"name": "authorID", "type": "string"},
          {"name": "content", "type": "string"},
          {"name": "mediaCID", "type": "string"},
          {"name": "timestamp", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getFollowingList",
    "stateMutability": "view",
    "inputs": [{"name": "user", "type": "address"}],
    "outputs": [{"name": "", "type": "address[]"}]
  },
  {
    "type": "function",
    "name": "repostTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "postId", "type": "string"},
      {"name": "reposterName", "type": "string"},
      {"name": "reposterID", "type": "string"},
      {"name": "reposterAvatar", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getTotalReposts",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "hasUserReposted",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  }
]`

const PostInteractionsABI = `[
  {
    "type": "function",
    "name": "likeTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "unlikeTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getTotalLikes",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "isLiked",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "type": "function",
    "name": "addComment",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"},
      {"name": "name", "type": "string"},
      {"name": "commenterID", "type": "string"},
      {"name": "avatar", "type": "string"},
      {"name": "content", "type": "string"},
      {"name": "mediaCID", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getComments",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "id", "type": "string"},
          {"name": "postId", "type": "string"},
          {"name": "commenter", "type": "address"},
          {"name": "name", "type": "string"},
          {"name": "commenterID", "type": "string"},
          {"name": "avatar", "type": "string"},
          {"name": "content", "type": "string"},
          {"name": "mediaCID", "type": "string"},
          {"name": "timestamp", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getTotalComments",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "hasUserCommented",
    "stateMutability": "view",
    "inputs": [
      {"name": "author", "type": "address"},
      {"name": "postId", "type": "string"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  }
]`

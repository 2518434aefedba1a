package config

type Endpoints struct {
	ChainRPCURL     string `yaml:"chain_rpc_url"`    // JSON-RPC endpoint of the ledger node
	AuthBaseURL     string `yaml:"auth_base_url"`    // identity backend base URL
	PinningBaseURL  string `yaml:"pinning_base_url"` // pinning API base URL
	GatewayBaseURL  string `yaml:"gateway_base_url"` // public IPFS gateway
	PostTweetAddr   string `yaml:"post_tweet_addr"`  // contract address (hex)
	InteractionAddr string `yaml:"interaction_addr"` // contract address (hex)
	ChainID         int64  `yaml:"chain_id,omitempty"`
}

type Auth struct {
	AuthToken string `yaml:"auth_token,omitempty"`
}

type Context struct {
	Name      string    `yaml:"name"`
	Endpoints Endpoints `yaml:"endpoints"`
	Auth      Auth      `yaml:"auth"`
}

type Config struct {
	Current  string             `yaml:"current"`
	Contexts map[string]Context `yaml:"contexts"`
}

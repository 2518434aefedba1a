package cli

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	dtcfg "github.com/Dyslex7c/Decentralized-Twitter/internal/config"
)

func newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage named endpoint contexts",
		Long: `Manage named endpoint contexts in ~/.dtwitter/config.yaml.

A context bundles the ledger RPC, contract addresses, auth backend and
pinning endpoints. Switching contexts switches all of them at once.`,
	}

	cmd.AddCommand(newContextShowCmd())
	cmd.AddCommand(newContextListCmd())
	cmd.AddCommand(newContextUseCmd())
	cmd.AddCommand(newContextSetCmd())

	return cmd
}

func newContextShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active context",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := dtcfg.Load()
			if err != nil {
				return err
			}
			current := dtcfg.GetCurrent(cfg)

			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, current)
			}
			fmt.Fprintf(out, "context:          %s\n", current.Name)
			fmt.Fprintf(out, "chain-rpc-url:    %s\n", current.Endpoints.ChainRPCURL)
			fmt.Fprintf(out, "chain-id:         %d\n", current.Endpoints.ChainID)
			fmt.Fprintf(out, "post-tweet-addr:  %s\n", current.Endpoints.PostTweetAddr)
			fmt.Fprintf(out, "interaction-addr: %s\n", current.Endpoints.InteractionAddr)
			fmt.Fprintf(out, "auth-url:         %s\n", current.Endpoints.AuthBaseURL)
			fmt.Fprintf(out, "pinning-url:      %s\n", current.Endpoints.PinningBaseURL)
			fmt.Fprintf(out, "gateway-url:      %s\n", current.Endpoints.GatewayBaseURL)
			return nil
		},
	}
}

func newContextListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := dtcfg.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for name := range cfg.Contexts {
				marker := " "
				if name == cfg.Current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newContextUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch to a context, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, path, err := dtcfg.Load()
			if err != nil {
				return err
			}
			if _, ok := cfg.Contexts[name]; !ok {
				cfg.Contexts[name] = dtcfg.Context{
					Name:      name,
					Endpoints: dtcfg.DefaultEndpoints(),
				}
			}
			cfg.Current = name
			if err := dtcfg.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "switched to context %q\n", name)
			return nil
		},
	}
}

func newContextSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set an endpoint on the active context",
		Long: `Set an endpoint on the active context.

Keys: chain-rpc-url, chain-id, post-tweet-addr, interaction-addr,
auth-url, pinning-url, gateway-url`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			cfg, path, err := dtcfg.Load()
			if err != nil {
				return err
			}
			current := dtcfg.GetCurrent(cfg)

			switch key {
			case "chain-rpc-url":
				current.Endpoints.ChainRPCURL = value
			case "chain-id":
				id, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid chain id: %s", value)
				}
				current.Endpoints.ChainID = id
			case "post-tweet-addr":
				if !common.IsHexAddress(value) {
					return fmt.Errorf("invalid address: %s", value)
				}
				current.Endpoints.PostTweetAddr = common.HexToAddress(value).Hex()
			case "interaction-addr":
				if !common.IsHexAddress(value) {
					return fmt.Errorf("invalid address: %s", value)
				}
				current.Endpoints.InteractionAddr = common.HexToAddress(value).Hex()
			case "auth-url":
				current.Endpoints.AuthBaseURL = value
			case "pinning-url":
				current.Endpoints.PinningBaseURL = value
			case "gateway-url":
				current.Endpoints.GatewayBaseURL = value
			default:
				return fmt.Errorf("unknown key: %s", key)
			}

			cfg.Contexts[current.Name] = current
			if err := dtcfg.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}

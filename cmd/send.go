package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xortim/crier/pkg/slackapi"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <text>...",
		Short: "Post a message to a Slack channel",
		Long:  `Post a message to a Slack channel, optionally as a threaded reply.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  send,
	}

	setupSendFlags(cmd)

	return cmd
}

func send(cmd *cobra.Command, args []string) error {
	client := newClient()
	thread := &slackapi.Thread{
		Channel: viper.GetString("send.channel"),
		TS:      viper.GetString("send.thread_ts"),
	}

	resp, err := client.SendMessage(thread, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if resp == nil {
		// missing token or channel, already logged
		return nil
	}

	fmt.Println(thread.TS)
	return nil
}

func setupSendFlags(c *cobra.Command) {
	c.PersistentFlags().StringP("channel", "c", "", "The channel ID to post into.")
	viper.BindPFlag("send.channel", c.PersistentFlags().Lookup("channel"))

	c.PersistentFlags().String("thread-ts", "", "Timestamp of the thread root to reply to.")
	viper.BindPFlag("send.thread_ts", c.PersistentFlags().Lookup("thread-ts"))
}

// newClient builds the shared slackapi client from viper config.
func newClient() *slackapi.Client {
	return slackapi.New(slackapi.Config{
		Token:   viper.GetString("slack.token"),
		BaseURL: viper.GetString("slack.api_url"),
	})
}

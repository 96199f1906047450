package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xortim/crier/pkg/files"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <path|->",
		Short: "Upload a file to a Slack channel",
		Long:  `Upload a file to a Slack channel. Pass "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE:  upload,
	}

	setupUploadFlags(cmd)

	return cmd
}

func upload(cmd *cobra.Command, args []string) error {
	var in files.Input
	if args[0] == "-" {
		in = files.ReaderInput{
			Name:   viper.GetString("upload.filename"),
			Reader: os.Stdin,
		}
	} else {
		in = files.PathInput(args[0])
	}

	path, err := files.Resolve(in, "")
	if err != nil {
		return err
	}

	_, err = newClient().UploadFile(path, uploadFields())
	return err
}

// uploadFields builds the extra multipart fields from viper config.
func uploadFields() map[string]string {
	fields := map[string]string{}
	if channel := viper.GetString("upload.channel"); channel != "" {
		fields["channels"] = channel
	}
	if title := viper.GetString("upload.title"); title != "" {
		fields["title"] = title
	}
	if comment := viper.GetString("upload.initial_comment"); comment != "" {
		fields["initial_comment"] = comment
	}
	return fields
}

func setupUploadFlags(c *cobra.Command) {
	c.PersistentFlags().StringP("channel", "c", "", "The channel ID to share the file into.")
	viper.BindPFlag("upload.channel", c.PersistentFlags().Lookup("channel"))

	c.PersistentFlags().String("filename", "", "File name to use when reading from stdin.")
	viper.BindPFlag("upload.filename", c.PersistentFlags().Lookup("filename"))

	c.PersistentFlags().String("title", "", "Title shown for the uploaded file.")
	viper.BindPFlag("upload.title", c.PersistentFlags().Lookup("title"))

	c.PersistentFlags().String("initial_comment", "", "Message posted alongside the file.")
	viper.BindPFlag("upload.initial_comment", c.PersistentFlags().Lookup("initial_comment"))
}

package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func setupViperConfig(t *testing.T, cfg map[string]interface{}) {
	for k, v := range cfg {
		viper.Set(k, v)
	}
	t.Cleanup(viper.Reset)
}

func TestUploadFields(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]interface{}
		want   map[string]string
	}{
		{
			name:   "nothing configured",
			config: map[string]interface{}{},
			want:   map[string]string{},
		},
		{
			name: "channel only",
			config: map[string]interface{}{
				"upload.channel": "C123",
			},
			want: map[string]string{"channels": "C123"},
		},
		{
			name: "all fields",
			config: map[string]interface{}{
				"upload.channel":         "C123",
				"upload.title":           "Weekly report",
				"upload.initial_comment": "fresh numbers",
			},
			want: map[string]string{
				"channels":        "C123",
				"title":           "Weekly report",
				"initial_comment": "fresh numbers",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupViperConfig(t, tt.config)

			got := uploadFields()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("uploadFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

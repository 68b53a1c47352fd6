package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [file] [sql]",
	Short: "Run a SQL query against a collection database",
	Long: `Decodes a collection file and runs an arbitrary SQL statement
against its database, printing the resulting rows.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	sess, err := openCollection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	rows, err := sess.Query(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	if queryJSON {
		out := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.Values)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(rows) == 0 {
		cmd.Println("No rows.")
		return nil
	}
	cmd.Println(strings.Join(rows[0].Columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row.Columns))
		for i, col := range row.Columns {
			cells[i] = formatValue(row.Values[col])
		}
		cmd.Println(strings.Join(cells, "\t"))
	}
	cmd.Printf("%d row(s)\n", len(rows))
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

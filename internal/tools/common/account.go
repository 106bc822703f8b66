package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when absent or empty.
func GetAccountFromArgs(args map[string]interface{}) string {
	if account, ok := args["account"].(string); ok && account != "" {
		return account
	}
	return "default"
}

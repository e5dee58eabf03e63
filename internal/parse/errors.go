package parse

const (
	UNTERMINATED_BLOCK_COMMENT     = "unterminated block comment"
	UNTERMINATED_STRING_LIT        = "unterminated string literal"
	UNTERMINATED_TEMPLATE_LIT      = "unterminated template literal"
	UNTERMINATED_REGEX_LIT         = "unterminated regular expression literal"
	UNTERMINATED_TEMPLATE_SUBST    = "unterminated template substitution, missing '}'"
	UNEXPECTED_CLOSING_BRACKET     = "unexpected closing bracket"
	MISMATCHED_CLOSING_BRACKET     = "closing bracket does not match the opening bracket"
	UNTERMINATED_BRACKETED_CODE    = "unterminated code, a closing bracket is missing"
	UNTERMINATED_ELEMENT           = "unterminated element, missing closing tag"
	UNTERMINATED_FRAGMENT          = "unterminated fragment, missing </>"
	UNTERMINATED_CLOSING_TAG       = "unterminated closing tag, missing '>'"
	INVALID_CLOSING_TAG_NAME       = "invalid closing tag name"
	UNTERMINATED_EXPR_CONTAINER    = "unterminated expression container, missing '}'"
	UNEXPECTED_LESS_THAN_IN_MARKUP = "unexpected '<' in markup text"
)

func fmtUnexpectedClosingTag(expected, actual string) string {
	return "unexpected closing tag </" + actual + ">, expected </" + expected + ">"
}

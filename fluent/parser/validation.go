package parser

// isEntryStart checks if a character is valid to be the start of a new entry.
// Kept independent of isIdentifierStart: junk recovery must not accept a
// leading underscore even though the Identifier grammar does.
func isEntryStart(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '#' || char == '-'
}

// isIdentifierStart checks if a character is valid to be the start of an identifier.
// The data model allows a leading underscore in addition to the bare Fluent grammar's a-zA-Z.
func isIdentifierStart(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '_'
}

// isIdentifierFollowing checks if a character is valid to be part of an identifier
func isIdentifierFollowing(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_' || char == '-'
}

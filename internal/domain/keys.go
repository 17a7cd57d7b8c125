package domain

// KeyPrefix namespaces every key this service writes.
// Product hashes live at "<KeyPrefix><collection>:<id>" and each
// collection's FT index at "<KeyPrefix><collection>:idx".
const KeyPrefix = "shopsearch:"

package game

// PlayerID identifies a player within one game, as assigned by the coordinator on join.
type PlayerID int

// Unowned is the owner of a lighthouse nobody controls.
const Unowned PlayerID = -1

// Package dedupe provides shared singleflight groups used to collapse
// concurrent requests for the same stored battle data into one database
// read.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates battle report loads keyed by "battle:<uuid>".
var BattleGroup singleflight.Group

// StatsGroup deduplicates encounter statistics queries; there is a single
// key, "stats".
var StatsGroup singleflight.Group

// BattleKey returns the BattleGroup key for a battle UUID.
func BattleKey(uuid string) string { return "battle:" + uuid }

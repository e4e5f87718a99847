package data

// Room file layout (YAML):
//
//	id: entrance
//	tile_size: 16
//	tiles:
//	  - "################"
//	  - "#..............."
//	doors:
//	  - {id: east, cell: {x: 15, y: 1}, side: right, target_room: hall, target_door: west}
//	enemies:
//	  - {kind: slime, cell: {x: 5, y: 1}, facing: left, min_x: 16, max_x: 200}
//	breakables:
//	  - {id: crate, cell: {x: 8, y: 1}, hits: 2, loot: {kind: coin, count: 3}}
//	pickups:
//	  - {id: c1, kind: coin, cell: {x: 3, y: 1}}
//	player_start: {x: 2, y: 1}

type cellFile struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type posFile struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type doorFile struct {
	ID         string   `yaml:"id"`
	Cell       cellFile `yaml:"cell"`
	Side       string   `yaml:"side"`
	TargetRoom string   `yaml:"target_room"`
	TargetDoor string   `yaml:"target_door"`
	Spawn      *posFile `yaml:"spawn"`
}

type enemyFile struct {
	Kind   string   `yaml:"kind"`
	Cell   cellFile `yaml:"cell"`
	Facing string   `yaml:"facing"`
	MinX   float64  `yaml:"min_x"`
	MaxX   float64  `yaml:"max_x"`
}

type lootFile struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

type breakableFile struct {
	ID   string    `yaml:"id"`
	Cell cellFile  `yaml:"cell"`
	Hits int       `yaml:"hits"`
	Loot *lootFile `yaml:"loot"`
}

type pickupFile struct {
	ID   string   `yaml:"id"`
	Kind string   `yaml:"kind"`
	Cell cellFile `yaml:"cell"`
}

type roomFile struct {
	ID          string          `yaml:"id"`
	TileSize    float64         `yaml:"tile_size"`
	Tiles       []string        `yaml:"tiles"`
	Doors       []doorFile      `yaml:"doors"`
	Enemies     []enemyFile     `yaml:"enemies"`
	Breakables  []breakableFile `yaml:"breakables"`
	Pickups     []pickupFile    `yaml:"pickups"`
	PlayerStart *cellFile       `yaml:"player_start"`
}

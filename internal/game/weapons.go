package game

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownWeapon = errors.New("unknown weapon")

type Weapon struct {
	Name            string
	Radius          float64
	Damage          float64
	ExplosionRadius float64
	Fuse            int
	Cluster         int
}

const (
	WeaponBazooka        = "bazooka"
	WeaponGrenade        = "grenade"
	WeaponMortar         = "mortar"
	WeaponNuke           = "nuke"
	WeaponClusterGrenade = "clusterGrenade"
)

var weaponCatalog = map[string]Weapon{
	WeaponBazooka:        {Name: WeaponBazooka, Radius: 5, Damage: 10, ExplosionRadius: 20},
	WeaponGrenade:        {Name: WeaponGrenade, Radius: 5, Damage: 15, ExplosionRadius: 20, Fuse: 180},
	WeaponMortar:         {Name: WeaponMortar, Radius: 5, Damage: 10, ExplosionRadius: 20, Cluster: 3},
	WeaponNuke:           {Name: WeaponNuke, Radius: 10, Damage: 25, ExplosionRadius: 50},
	WeaponClusterGrenade: {Name: WeaponClusterGrenade, Radius: 5, Damage: 7.5, ExplosionRadius: 20, Fuse: 180, Cluster: 3},
}

// WeaponChoices is the discrete weapon index space exposed to opponents.
var WeaponChoices = []string{WeaponBazooka, WeaponGrenade, WeaponMortar, WeaponNuke}

func LookupWeapon(name string) (Weapon, error) {
	w, ok := weaponCatalog[name]
	if !ok {
		return Weapon{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	return w, nil
}

// Weapons returns the catalog sorted by name.
func Weapons() []Weapon {
	out := make([]Weapon, 0, len(weaponCatalog))
	for _, w := range weaponCatalog {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StrongestWeapon picks the entry with the highest damage, breaking ties on
// explosion radius.
func StrongestWeapon() Weapon {
	var best Weapon
	for _, w := range Weapons() {
		if w.Damage > best.Damage || (w.Damage == best.Damage && w.ExplosionRadius > best.ExplosionRadius) {
			best = w
		}
	}
	return best
}

func clusterChildWeapon() Weapon {
	w := weaponCatalog[WeaponGrenade]
	w.Damage *= ClusterDamageScale
	w.Cluster = 0
	return w
}

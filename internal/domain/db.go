package domain

import "math"

const (
	MinDB   = -65.0
	MaxDB   = 6.0
	MinAlsa = 0
	MaxAlsa = 65535

	unityAlsa = 32768
)

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// AlsaToDB converts a native 16 bit mixer value to decibels in 0.5 dB steps.
func AlsaToDB(v int) float64 {
	if v <= MinAlsa {
		return MinDB
	}
	if v > MaxAlsa {
		v = MaxAlsa
	}
	db := 20 * math.Log10(float64(v)/unityAlsa)
	return clampFloat(roundHalf(db), MinDB, MaxDB)
}

// DBToAlsa is the inverse of AlsaToDB.
func DBToAlsa(db float64) int {
	db = clampFloat(roundHalf(db), MinDB, MaxDB)
	if db == MinDB {
		return MinAlsa
	}
	v := int(math.Round(unityAlsa * math.Pow(10, db/20)))
	if v > MaxAlsa {
		return MaxAlsa
	}
	return v
}

// PercentToDB maps a fader percentage linearly onto [MinDB, MaxDB].
func PercentToDB(p int) float64 {
	db := float64(p)/100*(MaxDB-MinDB) + MinDB
	return clampFloat(roundHalf(db), MinDB, MaxDB)
}

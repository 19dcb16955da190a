package physics

import (
	"errors"
	"fmt"
)

const PlayerBodyName = "player"

var ErrPlayerContract = errors.New("player body violates the controller contract")

// PlayerControllerConfig is how the player cylinder takes part in the
// physics world. The movement controller applies its own acceleration and
// owns the orientation; the body only has to stay out of its way.
type PlayerControllerConfig struct {
	Height      float32
	Radius      float32
	Mass        float32
	Friction    float32
	Restitution float32
	// FrictionCombine and RestitutionCombine must be CombineMin so the
	// player's zero coefficients win every contact.
	FrictionCombine    CombineRule
	RestitutionCombine CombineRule
	LockedAxes         LockedAxes
	CCD                bool
	GravityScale       float32
}

func DefaultPlayerControllerConfig() PlayerControllerConfig {
	return PlayerControllerConfig{
		Height:             3.0,
		Radius:             0.5,
		Mass:               1.0,
		Friction:           0.0,
		Restitution:        0.0,
		FrictionCombine:    CombineMin,
		RestitutionCombine: CombineMin,
		LockedAxes:         RotationLocked,
		CCD:                true,
		GravityScale:       0.0,
	}
}

// Validate returns ErrPlayerContract, with the offending field, when any
// part of the contract is broken.
func (c PlayerControllerConfig) Validate() error {
	switch {
	case c.Height <= 0 || c.Radius <= 0:
		return fmt.Errorf("%w: height %v radius %v", ErrPlayerContract, c.Height, c.Radius)
	case c.Mass <= 0:
		return fmt.Errorf("%w: mass %v", ErrPlayerContract, c.Mass)
	case c.FrictionCombine != CombineMin:
		return fmt.Errorf("%w: friction combine %s", ErrPlayerContract, c.FrictionCombine)
	case c.RestitutionCombine != CombineMin:
		return fmt.Errorf("%w: restitution combine %s", ErrPlayerContract, c.RestitutionCombine)
	case !c.LockedAxes.Has(RotationLocked):
		return fmt.Errorf("%w: rotation must be locked on every axis", ErrPlayerContract)
	case !c.CCD:
		return fmt.Errorf("%w: continuous collision detection disabled", ErrPlayerContract)
	case c.GravityScale != 0:
		return fmt.Errorf("%w: gravity scale %v", ErrPlayerContract, c.GravityScale)
	}
	return nil
}

// Collider is the upright cylinder of the player.
func (c PlayerControllerConfig) Collider() *Collider {
	return NewCylinder(c.Height*0.5, c.Radius)
}

func (c PlayerControllerConfig) Material() MaterialData {
	return MaterialData{
		Friction:           c.Friction,
		Restitution:        c.Restitution,
		FrictionCombine:    c.FrictionCombine,
		RestitutionCombine: c.RestitutionCombine,
	}
}

func (c PlayerControllerConfig) Dynamics() DynamicsData {
	return DynamicsData{
		Mass:         c.Mass,
		GravityScale: c.GravityScale,
		LockedAxes:   c.LockedAxes,
		CCD:          c.CCD,
	}
}

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoCollect.
//
// GoCollect is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoCollect is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoCollect. If not, see https://www.gnu.org/licenses/.

package main

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type config struct {
	LogLevel         string  `env:"LOG_LEVEL" env-default:"info" env-description:"zerolog level"`
	Workers          int     `env:"COLLECT_WORKERS" env-default:"1" env-description:"partitions for parallel collection, 0 uses GOMAXPROCS"`
	CalorieThreshold float64 `env:"CALORIE_THRESHOLD" env-default:"500" env-description:"calories above which a dish is caloric"`
	DietLimit        int     `env:"DIET_LIMIT" env-default:"400" env-description:"highest calorie count of a DIET dish"`
	NormalLimit      int     `env:"NORMAL_LIMIT" env-default:"700" env-description:"highest calorie count of a NORMAL dish"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.DietLimit >= cfg.NormalLimit {
		return config{}, fmt.Errorf("DIET_LIMIT (%d) must be below NORMAL_LIMIT (%d)", cfg.DietLimit, cfg.NormalLimit)
	}
	return cfg, nil
}
